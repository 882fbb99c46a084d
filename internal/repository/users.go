package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Clark-Hu/movie-reviews/internal/domain"
)

const uniqueViolation = "23505"

// UsersRepository persists accounts in Postgres.
type UsersRepository struct {
	pool *pgxpool.Pool
}

// Create stores a new account. A duplicate email yields ErrConflict.
func (r *UsersRepository) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	const query = `
        INSERT INTO users (id, email, password_hash)
        VALUES ($1,$2,$3)
        RETURNING id, email, password_hash, created_at
    `
	user, err := scanUser(r.pool.QueryRow(ctx, query, uuid.NewString(), email, passwordHash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.User{}, ErrConflict
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByEmail fetches an account by email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE email = $1`
	return scanUserOrNotFound(r.pool.QueryRow(ctx, query, email))
}

// GetByID fetches an account by identifier.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	if !validID(id) {
		return domain.User{}, ErrNotFound
	}
	const query = `SELECT id, email, password_hash, created_at FROM users WHERE id = $1`
	return scanUserOrNotFound(r.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		return domain.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

func scanUserOrNotFound(row pgx.Row) (domain.User, error) {
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
