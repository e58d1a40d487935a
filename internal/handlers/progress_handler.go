package handlers

import (
	"net/http"
	"strings"

	"kidlearn/internal/logger"
	"kidlearn/internal/service"
	"kidlearn/internal/validation"
)

// ProgressHandler serves the progress ledger
type ProgressHandler struct {
	progressService *service.ProgressService
	log             *logger.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{progressService: progressService, log: log}
}

// activityType reads the {type} path value. Any type the upsert accepted
// can be listed and cleared.
func activityType(r *http.Request) (string, error) {
	t := strings.TrimSpace(r.PathValue("type"))
	if t == "" {
		return "", validation.Fail("type", "is required")
	}
	return t, nil
}

// ListProgress returns all of a user's progress records
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	records, err := h.progressService.ListProgress(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// ListProgressByType returns a user's records for one activity type
func (h *ProgressHandler) ListProgressByType(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	t, err := activityType(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	records, err := h.progressService.ListProgressByType(r.Context(), userID, t)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// RecordProgress upserts the record for (user, activity type, level)
func (h *ProgressHandler) RecordProgress(w http.ResponseWriter, r *http.Request) {
	var input service.ProgressInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	record, err := h.progressService.RecordProgress(r.Context(), input)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// ClearProgress removes all of a user's records
func (h *ProgressHandler) ClearProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	if _, err := h.progressService.ClearProgress(r.Context(), userID); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondSuccess(w)
}

// ClearProgressByType removes a user's records for one activity type
func (h *ProgressHandler) ClearProgressByType(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	t, err := activityType(r)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	if _, err := h.progressService.ClearProgressByType(r.Context(), userID, t); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondSuccess(w)
}
