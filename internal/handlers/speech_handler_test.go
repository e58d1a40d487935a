package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidlearn/internal/audio"
	"kidlearn/internal/logger"
	"kidlearn/internal/models"
)

func TestSpeechRoutes(t *testing.T) {
	tts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("mp3:" + r.URL.Query().Get("q")))
	}))
	t.Cleanup(tts.Close)

	speaker := audio.NewSpeaker(t.TempDir(), tts.URL, logger.NewNop())
	s := newTestServer(t, "", func(svc *Services) { svc.Speaker = speaker })

	rec := s.do(t, http.MethodPost, "/api/reading/words", map[string]any{
		"word": "sun", "imageUrl": "https://example.com/sun.png", "level": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	word := decode[models.ReadingWord](t, rec)

	rec = s.do(t, http.MethodGet, "/api/reading/words/"+itoa(word.ID)+"/audio", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "audio/mpeg", rec.Header().Get("Content-Type"))
	assert.Equal(t, "mp3:SUN", rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/math/activities", map[string]any{
		"type": "counting", "level": 1, "question": "How many stars?", "answer": 2, "objects": []string{"⭐", "⭐"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	activity := decode[models.MathActivity](t, rec)

	rec = s.do(t, http.MethodGet, "/api/math/activities/"+itoa(activity.ID)+"/audio", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "mp3:How many stars?", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/reading/words/999/audio", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSpeechRouteRejectsOverlongQuestion(t *testing.T) {
	speaker := audio.NewSpeaker(t.TempDir(), "http://127.0.0.1:0", logger.NewNop())
	s := newTestServer(t, "", func(svc *Services) { svc.Speaker = speaker })

	// Rows written before the question length limit existed
	_, err := s.db.ExecContext(context.Background(),
		"INSERT INTO math_activities (type, level, question, answer, objects) VALUES (?, ?, ?, ?, ?)",
		"counting", 1, strings.Repeat("a", audio.MaxTextLength+1), 1, "[]")
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/math/activities/1/audio", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_failed", decode[envelope](t, rec).Error.Code)
}

func TestSpeechRoutesDisabledWithoutSpeaker(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodGet, "/api/reading/words/1/audio", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
