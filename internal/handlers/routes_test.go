package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidlearn/internal/database"
	"kidlearn/internal/logger"
	"kidlearn/internal/models"
	"kidlearn/internal/security"
	"kidlearn/internal/service"
)

type testServer struct {
	handler http.Handler
	db      *database.DB
	limiter *security.RateLimiter
}

func newTestServer(t *testing.T, adminPasswordHash string, opts ...func(*Services)) *testServer {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "handlers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logger.NewNop()
	sizes := service.LevelSizes{Reading: 12, Math: 10}
	tokens, err := security.NewTokenIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	users := service.NewUserService(db, db, log)
	svc := Services{
		DB:           db,
		Users:        users,
		Auth:         service.NewAuthService(users, tokens, adminPasswordHash, log),
		Progress:     service.NewProgressService(db, 0, log),
		Content:      service.NewContentService(db, db, log),
		Achievements: service.NewAchievementService(db, log),
		Dashboard:    service.NewDashboardService(db, service.NewAggregator(2.5, 60, time.UTC), sizes, 6),
	}

	for _, opt := range opts {
		opt(&svc)
	}

	limiter := security.NewRateLimiter(3, time.Minute)
	t.Cleanup(limiter.Stop)

	return &testServer{
		handler: NewRouter(svc, limiter, "", log),
		db:      db,
		limiter: limiter,
	}
}

// do sends a request with an optional JSON body and returns the recorder
func (s *testServer) do(t *testing.T, method, path string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func (s *testServer) createUser(t *testing.T, name string, age int) models.User {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/users", map[string]any{"name": name, "age": age})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.User](t, rec)
}

func TestUserRoutes(t *testing.T) {
	s := newTestServer(t, "")

	mia := s.createUser(t, "  Mia ", 6)
	assert.Equal(t, "Mia", mia.Name)
	assert.Zero(t, mia.TotalStars)
	assert.Nil(t, mia.LastActive)

	rec := s.do(t, http.MethodGet, "/api/user/"+itoa(mia.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[models.User](t, rec)
	assert.NotNil(t, fetched.LastActive)

	rec = s.do(t, http.MethodPut, "/api/users/"+itoa(mia.ID), map[string]any{"name": "Mia B", "age": 7})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Mia B", decode[models.User](t, rec).Name)

	s.createUser(t, "Leo", 5)
	rec = s.do(t, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.User](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, mia.ID, list[0].ID, "active users come first")

	rec = s.do(t, http.MethodDelete, "/api/users/"+itoa(mia.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]bool{"success": true}, decode[map[string]bool](t, rec))

	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(mia.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode[envelope](t, rec).Error.Code)
}

func TestUserRoutesValidation(t *testing.T) {
	s := newTestServer(t, "")

	tests := []struct {
		name string
		body any
		raw  string
	}{
		{name: "missing name", body: map[string]any{"age": 5}},
		{name: "age too high", body: map[string]any{"name": "Ana", "age": 40}},
		{name: "malformed json", raw: "{not json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec *httptest.ResponseRecorder
			if tt.raw != "" {
				req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewBufferString(tt.raw))
				rec = httptest.NewRecorder()
				s.handler.ServeHTTP(rec, req)
			} else {
				rec = s.do(t, http.MethodPost, "/api/users", tt.body)
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "validation_failed", decode[envelope](t, rec).Error.Code)
		})
	}

	rec := s.do(t, http.MethodGet, "/api/user/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProgressRoutes(t *testing.T) {
	s := newTestServer(t, "")
	user := s.createUser(t, "Mia", 6)

	body := map[string]any{
		"userId":         user.ID,
		"activityType":   "reading",
		"level":          1,
		"completedItems": []int64{1, 2, 2, 3},
		"stars":          2,
	}
	rec := s.do(t, http.MethodPost, "/api/progress", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	first := decode[models.ProgressRecord](t, rec)
	assert.Equal(t, []int64{1, 2, 3}, first.CompletedItems)
	assert.Equal(t, 10, first.TotalItems)

	body["completedItems"] = []int64{1, 2, 3, 4}
	body["stars"] = 3
	rec = s.do(t, http.MethodPost, "/api/progress", body)
	require.Equal(t, http.StatusOK, rec.Code)
	second := decode[models.ProgressRecord](t, rec)
	assert.Equal(t, first.ID, second.ID)

	s.do(t, http.MethodPost, "/api/progress", map[string]any{
		"userId": user.ID, "activityType": "math", "level": 1, "completedItems": []int64{7}, "stars": 1,
	})

	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(user.ID)+"/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.ProgressRecord](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(user.ID)+"/progress/reading", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	reading := decode[[]models.ProgressRecord](t, rec)
	require.Len(t, reading, 1)
	assert.Equal(t, 4, reading[0].CompletedCount())

	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(user.ID)+"/progress/spelling", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.ProgressRecord](t, rec))

	rec = s.do(t, http.MethodDelete, "/api/user/"+itoa(user.ID)+"/progress/math", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(user.ID)+"/progress", nil)
	assert.Len(t, decode[[]models.ProgressRecord](t, rec), 1)

	rec = s.do(t, http.MethodDelete, "/api/user/"+itoa(user.ID)+"/progress", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(user.ID)+"/progress", nil)
	assert.Empty(t, decode[[]models.ProgressRecord](t, rec))
}

func TestProgressRoutesRoundTripUnknownType(t *testing.T) {
	s := newTestServer(t, "")
	user := s.createUser(t, "Mia", 6)

	rec := s.do(t, http.MethodPost, "/api/progress", map[string]any{
		"userId": user.ID, "activityType": "science", "level": 1, "completedItems": []int64{4, 5}, "stars": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	path := "/api/user/" + itoa(user.ID) + "/progress/science"
	rec = s.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	science := decode[[]models.ProgressRecord](t, rec)
	require.Len(t, science, 1)
	assert.Equal(t, "science", science[0].ActivityType)
	assert.Equal(t, []int64{4, 5}, science[0].CompletedItems)

	rec = s.do(t, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.ProgressRecord](t, rec))
}

func TestProgressRouteRejectsMissingLevel(t *testing.T) {
	s := newTestServer(t, "")
	user := s.createUser(t, "Mia", 6)

	rec := s.do(t, http.MethodPost, "/api/progress", map[string]any{
		"userId": user.ID, "activityType": "reading", "completedItems": []int64{1},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardRoutes(t *testing.T) {
	s := newTestServer(t, "")
	user := s.createUser(t, "Mia", 6)

	s.do(t, http.MethodPost, "/api/progress", map[string]any{
		"userId": user.ID, "activityType": "reading", "level": 1, "completedItems": []int64{1, 2, 3, 4}, "stars": 2,
	})
	rec := s.do(t, http.MethodPost, "/api/user/"+itoa(user.ID)+"/achievements", map[string]any{
		"title": "First Steps", "description": "Finished a lesson", "icon": "star",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(user.ID)+"/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	d := decode[models.Dashboard](t, rec)
	assert.Equal(t, user.ID, d.User.ID)
	assert.Equal(t, 2, d.User.TotalStars)
	assert.Len(t, d.Reading, 6)
	assert.Len(t, d.Math, 6)
	assert.Len(t, d.WeeklyActivity, 7)
	assert.InDelta(t, 10.0, d.TotalMinutes, 1e-9)
	require.Len(t, d.Achievements, 1)
	assert.Equal(t, "First Steps", d.Achievements[0].Title)

	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(user.ID)+"/activity/weekly", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.DayActivity](t, rec), 7)

	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(user.ID)+"/session-time", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[models.SessionTime](t, rec)
	assert.Equal(t, 4, st.CompletedItems)
	assert.InDelta(t, 10.0, st.Minutes, 1e-9)

	rec = s.do(t, http.MethodGet, "/api/user/"+itoa(user.ID)+"/achievements", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Achievement](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/user/999/dashboard", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentRoutes(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodPost, "/api/reading/words", map[string]any{
		"word": "cat", "imageUrl": "https://example.com/cat.png", "level": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cat := decode[models.ReadingWord](t, rec)
	assert.Equal(t, "CAT", cat.Word)

	s.do(t, http.MethodPost, "/api/reading/words", map[string]any{
		"word": "ship", "imageUrl": "https://example.com/ship.png", "level": 2,
	})

	rec = s.do(t, http.MethodGet, "/api/reading/words?level=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.ReadingWord](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/reading/words", nil)
	assert.Len(t, decode[[]models.ReadingWord](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/api/reading/words/all", nil)
	assert.Len(t, decode[[]models.ReadingWord](t, rec), 2)

	rec = s.do(t, http.MethodGet, "/api/reading/words?level=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/api/reading/words/"+itoa(cat.ID), map[string]any{
		"word": "cats", "imageUrl": "https://example.com/cats.png", "level": 1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CATS", decode[models.ReadingWord](t, rec).Word)

	rec = s.do(t, http.MethodDelete, "/api/reading/words/"+itoa(cat.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodDelete, "/api/reading/words/"+itoa(cat.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/math/activities", map[string]any{
		"type": "addition", "level": 1, "question": "1 + 1 = ?", "answer": 2, "objects": []string{"🍎", "🍎"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sum := decode[models.MathActivity](t, rec)

	s.do(t, http.MethodPost, "/api/math/activities", map[string]any{
		"type": "counting", "level": 1, "question": "How many?", "answer": 3, "objects": []string{"⭐", "⭐", "⭐"},
	})

	rec = s.do(t, http.MethodGet, "/api/math/activities?type=addition&level=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.MathActivity](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/api/math/activities?type=addition", nil)
	assert.Len(t, decode[[]models.MathActivity](t, rec), 2, "type alone does not filter")

	rec = s.do(t, http.MethodGet, "/api/math/activities/"+itoa(sum.ID)+"/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	opts := decode[models.AnswerOptions](t, rec)
	assert.Len(t, opts.Options, 4)
	assert.Contains(t, opts.Options, 2)

	again := decode[models.AnswerOptions](t, s.do(t, http.MethodGet, "/api/math/activities/"+itoa(sum.ID)+"/options", nil))
	assert.Equal(t, opts.Options, again.Options)

	rec = s.do(t, http.MethodPost, "/api/math/activities", map[string]any{
		"type": "division", "level": 1, "question": "?", "answer": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/math/activities/"+itoa(sum.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/math/activities/"+itoa(sum.ID)+"/options", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionRoutes(t *testing.T) {
	s := newTestServer(t, "")
	user := s.createUser(t, "Mia", 6)

	rec := s.do(t, http.MethodGet, "/api/session", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/user/"+itoa(user.ID)+"/activate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	activated := decode[sessionResponse](t, rec)
	require.NotEmpty(t, activated.Token)
	require.NotNil(t, activated.User)
	assert.NotNil(t, activated.User.LastActive)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, security.SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	rec = s.do(t, http.MethodGet, "/api/session", nil, func(r *http.Request) { r.AddCookie(cookies[0]) })
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, user.ID, decode[sessionResponse](t, rec).User.ID)

	rec = s.do(t, http.MethodGet, "/api/session", nil, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+activated.Token)
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, -1, cleared[0].MaxAge)

	rec = s.do(t, http.MethodPost, "/api/user/999/activate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, "")

	rec := s.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])

	require.NoError(t, s.db.Close())
	rec = s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
