// Package domain contains the core entities, pure record transforms and the
// ports the application depends on.
package domain

import (
	"context"
	"time"
)

// Session represents an authenticated browser session of the owner.
type Session struct {
	Token     string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionRepository defines the port for session persistence operations.
// GetByToken returns nil, nil for an unknown token.
type SessionRepository interface {
	Create(ctx context.Context, s Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
