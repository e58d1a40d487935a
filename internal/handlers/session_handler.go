package handlers

import (
	"net/http"
	"time"

	"kidlearn/internal/apperr"
	"kidlearn/internal/logger"
	"kidlearn/internal/models"
	"kidlearn/internal/security"
	"kidlearn/internal/service"
)

// SessionHandler serves the active-user session and admin login
type SessionHandler struct {
	authService *service.AuthService
	log         *logger.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(authService *service.AuthService, log *logger.Logger) *SessionHandler {
	return &SessionHandler{authService: authService, log: log}
}

type sessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user,omitempty"`
}

// ActivateUser selects a user as the active player and issues a session token
func (h *SessionHandler) ActivateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	token, session, user, err := h.authService.StartSession(r.Context(), id)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	http.SetCookie(w, security.CreateSessionCookie(r, security.SessionCookieName, token, session.ExpiresAt))
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, ExpiresAt: session.ExpiresAt, User: user})
}

// GetSession returns the user named by the session token
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	token := security.TokenFromRequest(r, security.SessionCookieName)
	if token == "" {
		respondWithError(w, h.log, apperr.Unauthorized("no active session"))
		return
	}
	session, user, err := h.authService.ResolveSession(r.Context(), token)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindUnauthorized {
			http.SetCookie(w, security.CreateDeleteCookie(r, security.SessionCookieName))
		}
		respondWithError(w, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, ExpiresAt: session.ExpiresAt, User: user})
}

// ClearSession forgets the active user
func (h *SessionHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r, security.SessionCookieName))
	respondSuccess(w)
}

type adminLoginRequest struct {
	Password string `json:"password"`
}

// AdminLogin exchanges the admin password for an admin token
func (h *SessionHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, h.log, err)
		return
	}
	token, session, err := h.authService.AdminLogin(req.Password)
	if err != nil {
		respondWithError(w, h.log, err)
		return
	}
	http.SetCookie(w, security.CreateSessionCookie(r, security.AdminCookieName, token, session.ExpiresAt))
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, ExpiresAt: session.ExpiresAt})
}
