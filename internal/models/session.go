package models

import (
	"time"
)

// Role describes what an authenticated session is allowed to do
type Role string

const (
	RoleAdmin Role = "admin"
	RoleNone  Role = "none"
)

// Session represents the single active admin login for this process.
// Validity is re-derived from ExpiresAt on every read, never cached.
type Session struct {
	UserID    string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession creates an admin session valid for the given duration
func NewSession(userID, email, name string, now time.Time, duration time.Duration) *Session {
	return &Session{
		UserID:    userID,
		Email:     email,
		Name:      name,
		Role:      RoleAdmin,
		IssuedAt:  now,
		ExpiresAt: now.Add(duration),
	}
}

// ExpiredAt checks if the session has expired as of the given instant
func (s *Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsAdmin returns true if the session carries the admin role
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
