package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/netmovie-accounts/internal/domain/entity"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUserIDTaken = errors.New("user_id already exists")
	ErrEmailTaken  = errors.New("email already exists")
)

// UserRepository defines the interface for user-related database operations.
// Users are only ever created and read.
type UserRepository interface {
	// Create inserts u unless its user_id or email is already stored. On
	// conflict it returns ErrUserIDTaken (checked first) or ErrEmailTaken.
	// CreatedAt is filled from the stored row.
	Create(ctx context.Context, u *entity.User) error
	// FindByIdentifier returns the user whose user_id or user_name equals
	// identifier. An exact user_id match wins over a user_name match.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)
}
