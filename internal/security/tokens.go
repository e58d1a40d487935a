package security

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kidlearn/internal/apperr"
	"kidlearn/internal/models"
)

const (
	issuer    = "kidlearn"
	roleUser  = "user"
	roleAdmin = "admin"
)

// Claims are the JWT claims of session and admin tokens
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer. An empty secret gets a random one, so
// tokens do not survive a restart.
func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		secret = hex.EncodeToString(buf)
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// IssueUserToken issues an active-user token for userID
func (ti *TokenIssuer) IssueUserToken(userID int64) (string, *models.Session, error) {
	return ti.issue(strconv.FormatInt(userID, 10), roleUser)
}

// IssueAdminToken issues a token for the content admin
func (ti *TokenIssuer) IssueAdminToken() (string, *models.Session, error) {
	return ti.issue(roleAdmin, roleAdmin)
}

func (ti *TokenIssuer) issue(subject, role string) (string, *models.Session, error) {
	now := ti.now()
	expires := now.Add(ti.ttl)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	session, err := sessionFromClaims(&claims)
	if err != nil {
		return "", nil, err
	}
	return signed, session, nil
}

// Parse verifies a token and returns the session it carries.
// Any failure is reported as Unauthorized.
func (ti *TokenIssuer) Parse(token string) (*models.Session, error) {
	if token == "" {
		return nil, apperr.Unauthorized("no active session")
	}

	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ti.now),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return ti.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Unauthorized("session expired")
		}
		return nil, apperr.Unauthorized("invalid session token")
	}

	session, err := sessionFromClaims(claims)
	if err != nil {
		return nil, apperr.Unauthorized("invalid session token")
	}
	return session, nil
}

func sessionFromClaims(claims *Claims) (*models.Session, error) {
	session := &models.Session{ID: claims.ID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	switch claims.Role {
	case roleAdmin:
		session.Admin = true
	case roleUser:
		id, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid subject %q", claims.Subject)
		}
		session.UserID = id
	default:
		return nil, fmt.Errorf("unknown role %q", claims.Role)
	}
	return session, nil
}
