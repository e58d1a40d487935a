package handlers

import (
	"net/http"

	"kidlearn/internal/logger"
	"kidlearn/internal/models"
	"kidlearn/internal/service"
)

// ContentHandler serves the reading and math catalogs
type ContentHandler struct {
	contentService *service.ContentService
	log            *logger.Logger
}

// NewContentHandler creates a new content handler
func NewContentHandler(contentService *service.ContentService, log *logger.Logger) *ContentHandler {
	return &ContentHandler{contentService: contentService, log: log}
}

// ListWords returns the words of ?level=N, or every word without it
func (h *ContentHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	level, err := queryInt(r, "level")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}

	var words []models.ReadingWord
	if level == 0 {
		words, err = h.contentService.ListAllWords(r.Context())
	} else {
		words, err = h.contentService.ListWords(r.Context(), level)
	}
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, words)
}

// ListAllWords returns every reading word
func (h *ContentHandler) ListAllWords(w http.ResponseWriter, r *http.Request) {
	words, err := h.contentService.ListAllWords(r.Context())
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, words)
}

func (h *ContentHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	var input service.WordInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	word, err := h.contentService.CreateWord(r.Context(), input)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, word)
}

func (h *ContentHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	var input service.WordInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	word, err := h.contentService.UpdateWord(r.Context(), id, input)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, word)
}

func (h *ContentHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	if err := h.contentService.DeleteWord(r.Context(), id); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondSuccess(w)
}

// ListActivities filters by ?type=&level= when both are given
func (h *ContentHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	level, err := queryInt(r, "level")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	activities, err := h.contentService.ListActivities(r.Context(), r.URL.Query().Get("type"), level)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}

// AnswerOptions returns the four choices shown for an activity
func (h *ContentHandler) AnswerOptions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	opts, err := h.contentService.AnswerOptions(r.Context(), id)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, opts)
}

func (h *ContentHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var input service.ActivityInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	a, err := h.contentService.CreateActivity(r.Context(), input)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

func (h *ContentHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	var input service.ActivityInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	a, err := h.contentService.UpdateActivity(r.Context(), id, input)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, a)
}

func (h *ContentHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	if err := h.contentService.DeleteActivity(r.Context(), id); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	respondSuccess(w)
}
