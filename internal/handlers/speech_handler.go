package handlers

import (
	"errors"
	"net/http"

	"kidlearn/internal/apperr"
	"kidlearn/internal/audio"
	"kidlearn/internal/logger"
	"kidlearn/internal/service"
	"kidlearn/internal/validation"
)

// SpeechHandler serves spoken versions of reading words and math questions
type SpeechHandler struct {
	contentService *service.ContentService
	speaker        *audio.Speaker
	log            *logger.Logger
}

// NewSpeechHandler creates a new speech handler
func NewSpeechHandler(contentService *service.ContentService, speaker *audio.Speaker, log *logger.Logger) *SpeechHandler {
	return &SpeechHandler{contentService: contentService, speaker: speaker, log: log}
}

// WordAudio speaks a reading word
func (h *SpeechHandler) WordAudio(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	word, err := h.contentService.GetWord(r.Context(), id)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	h.serve(w, r, word.Word)
}

// QuestionAudio speaks a math activity's question
func (h *SpeechHandler) QuestionAudio(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	activity, err := h.contentService.GetActivity(r.Context(), id)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	h.serve(w, r, activity.Question)
}

func (h *SpeechHandler) serve(w http.ResponseWriter, r *http.Request, text string) {
	path, err := h.speaker.Speak(r.Context(), text)
	if errors.Is(err, audio.ErrEmptyText) || errors.Is(err, audio.ErrTextTooLong) {
		respondWithError(w, h.log, validation.Fail("text", err.Error()))
		return
	}
	if err != nil {
		respondWithError(w, h.log, apperr.Internal("failed to synthesize speech", err))
		return
	}
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeFile(w, r, path)
}
