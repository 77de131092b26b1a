package session

import (
	"context"
	"time"
)

// Session is one child's practice run as persisted by a Store.
type Session struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store abstracts where sessions live (in-memory, Redis).
// Get returns domain.ErrSessionNotFound for unknown or expired ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// Sweeper is implemented by stores that cannot expire entries on their own.
type Sweeper interface {
	Sweep(now time.Time, ttl time.Duration) []string
}
