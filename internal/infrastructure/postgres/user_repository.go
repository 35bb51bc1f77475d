package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/netmovie-accounts/internal/domain/entity"
	"github.com/oksasatya/netmovie-accounts/internal/domain/repository"
)

const (
	sqlStateUniqueViolation = "23505"

	constraintUserIDKey = "users_pkey"
	constraintEmailKey  = "users_email_key"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (user_id, user_name, password, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
		RETURNING created_at
	`, u.UserID, u.UserName, u.Password, u.Email, u.Phone)

	err := row.Scan(&u.CreatedAt)
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		// nothing inserted: some unique key is already taken
		return r.conflict(ctx, u.UserID, u.Email)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == sqlStateUniqueViolation {
		switch pgErr.ConstraintName {
		case constraintEmailKey:
			return repository.ErrEmailTaken
		case constraintUserIDKey:
			return repository.ErrUserIDTaken
		}
		return r.conflict(ctx, u.UserID, u.Email)
	}
	return fmt.Errorf("db error: %w", err)
}

// conflict reports which unique key blocked an insert, user_id first.
func (r *UserRepository) conflict(ctx context.Context, userID, email string) error {
	var idTaken, emailTaken bool
	err := r.pool.QueryRow(ctx, `
		SELECT
			EXISTS (SELECT 1 FROM users WHERE user_id = $1),
			EXISTS (SELECT 1 FROM users WHERE email = $2)
	`, userID, email).Scan(&idTaken, &emailTaken)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	switch {
	case idTaken:
		return repository.ErrUserIDTaken
	case emailTaken:
		return repository.ErrEmailTaken
	}
	return fmt.Errorf("db error: insert of %q skipped without a visible conflict", userID)
}

func (r *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT user_id, user_name, password, email, phone, created_at
		FROM users
		WHERE user_id = $1 OR user_name = $1
		ORDER BY (user_id = $1) DESC, created_at ASC, user_id ASC
		LIMIT 1
	`, identifier)

	if err := row.Scan(&u.UserID, &u.UserName, &u.Password, &u.Email, &u.Phone, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
