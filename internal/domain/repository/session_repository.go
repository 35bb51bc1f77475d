package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/netmovie-accounts/internal/domain/entity"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore keeps sessions until they are deleted or their ExpiresAt passes.
type SessionStore interface {
	Save(ctx context.Context, s *entity.Session) error
	// Get returns ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*entity.Session, error)
	// Delete is a no-op for unknown ids.
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
