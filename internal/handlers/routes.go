package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"kidlearn/internal/audio"
	"kidlearn/internal/database"
	"kidlearn/internal/logger"
	"kidlearn/internal/security"
	"kidlearn/internal/service"
)

// Services bundles what the router dispatches to
type Services struct {
	DB           *database.DB
	Users        *service.UserService
	Auth         *service.AuthService
	Progress     *service.ProgressService
	Content      *service.ContentService
	Achievements *service.AchievementService
	Dashboard    *service.DashboardService

	// Speaker is optional; without it the audio routes are not registered
	Speaker *audio.Speaker
}

// NewRouter registers every route and wraps the mux with recovery and
// request logging. staticPath is served at / when the directory exists.
func NewRouter(svc Services, adminLimiter *security.RateLimiter, staticPath string, log *logger.Logger) http.Handler {
	middleware := NewMiddleware(svc.Auth, adminLimiter, log)

	userHandler := NewUserHandler(svc.Users, log)
	sessionHandler := NewSessionHandler(svc.Auth, log)
	progressHandler := NewProgressHandler(svc.Progress, log)
	achievementHandler := NewAchievementHandler(svc.Achievements, log)
	dashboardHandler := NewDashboardHandler(svc.Dashboard, log)
	contentHandler := NewContentHandler(svc.Content, log)

	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("GET /api/users", userHandler.ListUsers)
	mux.HandleFunc("POST /api/users", userHandler.CreateUser)
	mux.HandleFunc("PUT /api/users/{id}", userHandler.UpdateUser)
	mux.HandleFunc("DELETE /api/users/{id}", userHandler.DeleteUser)
	mux.HandleFunc("GET /api/user/{id}", userHandler.GetUser)

	// Active-user session
	mux.HandleFunc("POST /api/user/{id}/activate", sessionHandler.ActivateUser)
	mux.HandleFunc("GET /api/session", sessionHandler.GetSession)
	mux.HandleFunc("DELETE /api/session", sessionHandler.ClearSession)
	mux.HandleFunc("POST /api/admin/login", middleware.RateLimit(sessionHandler.AdminLogin))

	// Progress
	mux.HandleFunc("POST /api/progress", progressHandler.RecordProgress)
	mux.HandleFunc("GET /api/user/{id}/progress", progressHandler.ListProgress)
	mux.HandleFunc("GET /api/user/{id}/progress/{type}", progressHandler.ListProgressByType)
	mux.HandleFunc("DELETE /api/user/{id}/progress", progressHandler.ClearProgress)
	mux.HandleFunc("DELETE /api/user/{id}/progress/{type}", progressHandler.ClearProgressByType)

	// Parent dashboard
	mux.HandleFunc("GET /api/user/{id}/dashboard", dashboardHandler.Dashboard)
	mux.HandleFunc("GET /api/user/{id}/activity/weekly", dashboardHandler.WeeklyActivity)
	mux.HandleFunc("GET /api/user/{id}/session-time", dashboardHandler.SessionTime)

	// Achievements
	mux.HandleFunc("GET /api/user/{id}/achievements", achievementHandler.ListAchievements)
	mux.HandleFunc("POST /api/user/{id}/achievements", achievementHandler.AwardAchievement)

	// Reading catalog
	mux.HandleFunc("GET /api/reading/words", contentHandler.ListWords)
	mux.HandleFunc("GET /api/reading/words/all", contentHandler.ListAllWords)
	mux.HandleFunc("POST /api/reading/words", middleware.RequireAdmin(contentHandler.CreateWord))
	mux.HandleFunc("PUT /api/reading/words/{id}", middleware.RequireAdmin(contentHandler.UpdateWord))
	mux.HandleFunc("DELETE /api/reading/words/{id}", middleware.RequireAdmin(contentHandler.DeleteWord))

	// Math catalog
	mux.HandleFunc("GET /api/math/activities", contentHandler.ListActivities)
	mux.HandleFunc("GET /api/math/activities/{id}/options", contentHandler.AnswerOptions)
	mux.HandleFunc("POST /api/math/activities", middleware.RequireAdmin(contentHandler.CreateActivity))
	mux.HandleFunc("PUT /api/math/activities/{id}", middleware.RequireAdmin(contentHandler.UpdateActivity))
	mux.HandleFunc("DELETE /api/math/activities/{id}", middleware.RequireAdmin(contentHandler.DeleteActivity))

	if svc.Speaker != nil {
		speechHandler := NewSpeechHandler(svc.Content, svc.Speaker, log)
		mux.HandleFunc("GET /api/reading/words/{id}/audio", speechHandler.WordAudio)
		mux.HandleFunc("GET /api/math/activities/{id}/audio", speechHandler.QuestionAudio)
	}

	mux.HandleFunc("GET /healthz", healthHandler(svc.DB, log))

	if staticPath != "" {
		if info, err := os.Stat(staticPath); err == nil && info.IsDir() {
			mux.Handle("GET /", http.FileServer(http.Dir(staticPath)))
		} else {
			log.Debug("static client not found, serving API only", "path", staticPath)
		}
	}

	return Recover(log, Logging(log, mux))
}

func healthHandler(db *database.DB, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Warn("health check failed", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
