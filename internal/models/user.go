package models

import "time"

// User represents a child profile
type User struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Age        int        `json:"age"`
	TotalStars int        `json:"totalStars"`
	LastActive *time.Time `json:"lastActive"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Session is the server-side view of an active-user or admin token
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId,omitempty"`
	Admin     bool      `json:"admin,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
