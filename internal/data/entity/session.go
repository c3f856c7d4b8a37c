package entity

import (
	"time"
)

// Session links the id handed to the browser to the remote bearer token.
// Token is plaintext here; the repository seals it at rest.
type Session struct {
	BaseSimple
	User      User      `db:"-"`
	Token     string    `db:"-"`
	ExpiresAt time.Time `db:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
