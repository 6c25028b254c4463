package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RefreshToken is an opaque session token stored hashed at rest.
type RefreshToken struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	TokenHash  string
	ExpiresAt  time.Time
	Revoked    bool
	ReplacedBy *uuid.UUID
	CreatedAt  time.Time
}

// Valid reports whether the token can still be redeemed.
func (t *RefreshToken) Valid(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

// PostgresRefreshTokenRepository persists refresh tokens.
type PostgresRefreshTokenRepository struct {
	DB *sql.DB
}

// NewPostgresRefreshTokenRepository creates a new repository with the given
// database connection.
func NewPostgresRefreshTokenRepository(db *sql.DB) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{DB: db}
}

// Create stores a new refresh token hash for the user and returns its id.
func (r *PostgresRefreshTokenRepository) Create(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at) VALUES ($1, $2, $3, $4)`,
		id, userID, tokenHash, expiresAt,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert refresh token: %w", err)
	}
	return id, nil
}

// FindByHash fetches a refresh token by its stored hash.
func (r *PostgresRefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*RefreshToken, error) {
	rt := &RefreshToken{}
	var replacedBy sql.NullString
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, revoked, replaced_by, created_at
		  FROM refresh_tokens WHERE token_hash = $1
	`, tokenHash).Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &rt.Revoked, &replacedBy, &rt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh token: %w", err)
	}
	if replacedBy.Valid {
		id, err := uuid.Parse(replacedBy.String)
		if err != nil {
			return nil, fmt.Errorf("parse replaced_by: %w", err)
		}
		rt.ReplacedBy = &id
	}
	return rt, nil
}

// Rotate revokes the old token, inserts its replacement, and links the two
// inside one transaction.
func (r *PostgresRefreshTokenRepository) Rotate(ctx context.Context, oldID uuid.UUID, userID uuid.UUID, newHash string, newExpiry time.Time) (uuid.UUID, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	newID := uuid.New()
	if _, err := tx.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = true, replaced_by = $1 WHERE id = $2`,
		newID, oldID,
	); err != nil {
		return uuid.Nil, fmt.Errorf("revoke old token: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at) VALUES ($1, $2, $3, $4)`,
		newID, userID, newHash, newExpiry,
	); err != nil {
		return uuid.Nil, fmt.Errorf("insert new token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("commit: %w", err)
	}
	return newID, nil
}

// RevokeAllForUser revokes every active token for the user (logout, or
// suspected refresh-token theft).
func (r *PostgresRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = true WHERE user_id = $1 AND revoked = false`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}
