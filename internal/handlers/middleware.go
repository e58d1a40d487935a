package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/google/uuid"

	"kidlearn/internal/apperr"
	"kidlearn/internal/logger"
	"kidlearn/internal/security"
	"kidlearn/internal/service"
)

// ContextKey is a custom type for context keys
type ContextKey string

const RequestIDKey ContextKey = "request_id"

// Middleware holds the cross-cutting request wrappers
type Middleware struct {
	authService  *service.AuthService
	adminLimiter *security.RateLimiter
	log          *logger.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, adminLimiter *security.RateLimiter, log *logger.Logger) *Middleware {
	return &Middleware{
		authService:  authService,
		adminLimiter: adminLimiter,
		log:          log,
	}
}

// RequireAdmin gates content writes behind an admin token. Without a
// configured admin password the route stays open.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.authService.AdminEnabled() {
			next(w, r)
			return
		}
		token := security.TokenFromRequest(r, security.AdminCookieName)
		if token == "" {
			respondWithError(w, m.log, apperr.Unauthorized("admin token required"))
			return
		}
		if err := m.authService.VerifyAdmin(token); err != nil {
			respondWithError(w, m.log, err)
			return
		}
		next(w, r)
	}
}

// RateLimit rejects clients that exceed the admin limiter's budget
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if ok, wait := m.adminLimiter.Allow(ip); !ok {
			m.log.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			respondJSON(w, http.StatusTooManyRequests, map[string]errorBody{
				"error": {Message: ErrRateLimited, Code: "rate_limited"},
			})
			return
		}
		next(w, r)
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += n
	return n, err
}

// Logging tags each request with an ID and logs method, path, status and duration
func Logging(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r.WithContext(ctx))

		log.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.statusCode,
			"bytes", wrapped.written,
			"duration", time.Since(start),
		)
	})
}

// Recover turns a handler panic into a 500 response
func Recover(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Error("panic in handler", "path", r.URL.Path, "panic", rec, "stack", string(debug.Stack()))
				respondWithError(w, log, apperr.Internal("handler panic", fmt.Errorf("%v", rec)))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// GetRequestID returns the request ID set by Logging
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDKey).(string)
	return id
}
