package service

import (
	"context"

	"kidlearn/internal/apperr"
	"kidlearn/internal/logger"
	"kidlearn/internal/models"
	"kidlearn/internal/security"
)

// AuthService issues and resolves the active-user session and the admin token
type AuthService struct {
	users             *UserService
	tokens            *security.TokenIssuer
	adminPasswordHash string
	log               *logger.Logger
}

// NewAuthService creates a new auth service. An empty adminPasswordHash
// leaves the content admin routes open.
func NewAuthService(users *UserService, tokens *security.TokenIssuer, adminPasswordHash string, log *logger.Logger) *AuthService {
	return &AuthService{
		users:             users,
		tokens:            tokens,
		adminPasswordHash: adminPasswordHash,
		log:               log,
	}
}

// StartSession activates a user and returns a token naming them
func (s *AuthService) StartSession(ctx context.Context, userID int64) (string, *models.Session, *models.User, error) {
	user, err := s.users.ActivateUser(ctx, userID)
	if err != nil {
		return "", nil, nil, err
	}
	token, session, err := s.tokens.IssueUserToken(user.ID)
	if err != nil {
		return "", nil, nil, apperr.Internal("failed to issue session", err)
	}
	s.log.Info("session started", "user_id", user.ID, "session_id", session.ID)
	return token, session, user, nil
}

// ResolveSession returns the user named by a session token
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.Session, *models.User, error) {
	session, err := s.tokens.Parse(token)
	if err != nil {
		return nil, nil, err
	}
	if session.Admin {
		return nil, nil, apperr.Unauthorized("not a user session")
	}

	user, err := s.users.PeekUser(ctx, session.UserID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, nil, apperr.Unauthorized("session user no longer exists")
		}
		return nil, nil, err
	}
	return session, user, nil
}

// AdminEnabled reports whether content writes require an admin token
func (s *AuthService) AdminEnabled() bool {
	return s.adminPasswordHash != ""
}

// AdminLogin checks the admin password and returns an admin token
func (s *AuthService) AdminLogin(password string) (string, *models.Session, error) {
	if !s.AdminEnabled() {
		return "", nil, apperr.Unauthorized("admin login is not configured")
	}
	if !security.CheckPassword(password, s.adminPasswordHash) {
		s.log.Warn("admin login failed")
		return "", nil, apperr.Unauthorized("invalid password")
	}
	token, session, err := s.tokens.IssueAdminToken()
	if err != nil {
		return "", nil, apperr.Internal("failed to issue admin token", err)
	}
	s.log.Info("admin logged in", "session_id", session.ID)
	return token, session, nil
}

// VerifyAdmin checks that token is a valid admin token
func (s *AuthService) VerifyAdmin(token string) error {
	session, err := s.tokens.Parse(token)
	if err != nil {
		return err
	}
	if !session.Admin {
		return apperr.Unauthorized("admin token required")
	}
	return nil
}
