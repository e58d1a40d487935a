package handlers

import (
	"net/http"

	"kidlearn/internal/logger"
	"kidlearn/internal/service"
)

// AchievementHandler serves a user's badges
type AchievementHandler struct {
	achievementService *service.AchievementService
	log                *logger.Logger
}

// NewAchievementHandler creates a new achievement handler
func NewAchievementHandler(achievementService *service.AchievementService, log *logger.Logger) *AchievementHandler {
	return &AchievementHandler{achievementService: achievementService, log: log}
}

// ListAchievements returns a user's badges, newest first
func (h *AchievementHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	list, err := h.achievementService.ListAchievements(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// AwardAchievement appends a badge to a user's log
func (h *AchievementHandler) AwardAchievement(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	var input service.AchievementInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	a, err := h.achievementService.AwardAchievement(r.Context(), userID, input)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}
