package core

import (
	"time"
)

const (
	DefaultStorageKey = "currentUser"
	DefaultMaxAge     = 24 * time.Hour
)

type SessionConfig struct {
	MaxAge time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxAge: DefaultMaxAge,
	}
}

// NewSession builds a session for u starting at now. Timestamps are kept at
// millisecond precision in UTC so they survive the persisted layout intact.
func NewSession(u *User, now time.Time, maxAge time.Duration) *Session {
	start := now.UTC().Truncate(time.Millisecond)
	return &Session{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		RoleName:  u.Role.String(),
		LoginTime: start,
		ExpiresAt: start.Add(maxAge),
	}
}
