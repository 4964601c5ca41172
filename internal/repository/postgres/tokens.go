package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cat-exhibition/internal/domain"
	"cat-exhibition/internal/repository"
)

const createRevokedTokensTable = `
CREATE TABLE IF NOT EXISTS revoked_tokens (
	jti TEXT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`

type TokenRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewTokenRepository(db *sql.DB) repository.TokenRepository {
	return &TokenRepository{db: db, now: time.Now}
}

func (r *TokenRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRevokedTokensTable); err != nil {
		return fmt.Errorf("create revoked tokens table: %w", err)
	}
	return nil
}

func (r *TokenRepository) Revoke(ctx context.Context, token domain.RevokedToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO revoked_tokens (jti, user_id, expires_at) VALUES ($1, $2, $3)
	`, token.JTI, token.UserID, token.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("revoke token: %w", castErr(err))
	}
	return nil
}

func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE jti = $1)
	`, jti).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return exists, nil
}

func (r *TokenRepository) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at < $1`, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("purge revoked tokens: %w", err)
	}
	return res.RowsAffected()
}
