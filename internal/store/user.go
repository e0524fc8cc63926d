package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/identity-hub/apiserver/internal/auth"
	"github.com/identity-hub/apiserver/types"
	"github.com/lib/pq"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create hashes the password, generates a fresh identifier and inserts
// the row with both timestamps set to now. It does not pre-check email
// uniqueness; callers do. A collision with the unique constraint still
// surfaces as ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, email, username, password string) (types.User, error) {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return types.User{}, err
	}

	now := time.Now().UTC()
	user := types.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	const query = `
		INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return types.User{}, ErrEmailTaken
		}
		return types.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (types.User, error) {
	const query = `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// List returns a page of users ordered newest-created first.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]types.User, error) {
	if limit < 1 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	const query = `
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := make([]types.User, 0, limit)
	for rows.Next() {
		var user types.User
		if err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Username,
			&user.PasswordHash,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update replaces email and username where supplied and keeps the stored
// values where nil. updated_at is refreshed unconditionally, field
// changes or not.
func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, email, username *string) (types.User, error) {
	const query = `
		UPDATE users
		SET email = COALESCE($2, email),
			username = COALESCE($3, username),
			updated_at = $4
		WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, email, username, time.Now().UTC())
	if err != nil {
		return types.User{}, fmt.Errorf("update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.User{}, fmt.Errorf("update user: %w", err)
	}
	if affected == 0 {
		return types.User{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete reports whether a row was removed.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `DELETE FROM users WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return affected > 0, nil
}

// VerifyPassword returns the user only when the email exists and the
// plaintext matches its stored hash. Unknown email and wrong password
// are indistinguishable: both yield ErrNotFound.
func (r *UserRepository) VerifyPassword(ctx context.Context, email, password string) (types.User, error) {
	user, err := r.GetByEmail(ctx, email)
	if err != nil {
		return types.User{}, err
	}

	match, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return types.User{}, err
	}
	if !match {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (types.User, error) {
	var user types.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}
