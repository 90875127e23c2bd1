package session

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
	"storefront/internal/guestcart"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// NewPostgres stores cart snapshots in the guest_sessions table. Rows past
// their expiry read as absent; every write bumps the expiry by ttl, so a
// session stays alive while the shopper keeps touching the cart.
func NewPostgres(pool *pgxpool.Pool, ttl time.Duration) Repository {
	return &postgresRepo{pool: pool, ttl: ttl}
}

func (r *postgresRepo) ForToken(token string) guestcart.Store {
	return &tokenStore{pool: r.pool, token: token, ttl: r.ttl}
}

func (r *postgresRepo) DeleteExpired(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM guest_sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

type tokenStore struct {
	pool  *pgxpool.Pool
	token string
	ttl   time.Duration
}

func (s *tokenStore) Read(ctx context.Context) ([]byte, error) {
	const q = `
SELECT cart
FROM guest_sessions
WHERE token = $1 AND expires_at > now()
`
	var payload []byte
	if err := s.pool.QueryRow(ctx, q, s.token).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (s *tokenStore) Write(ctx context.Context, payload []byte) error {
	const q = `
INSERT INTO guest_sessions (token, cart, expires_at)
VALUES ($1, $2, $3)
ON CONFLICT (token) DO UPDATE
SET cart = EXCLUDED.cart,
    expires_at = EXCLUDED.expires_at
`
	_, err := s.pool.Exec(ctx, q, s.token, payload, time.Now().Add(s.ttl))
	return err
}

func (s *tokenStore) Delete(ctx context.Context) error {
	cmd, err := s.pool.Exec(ctx, `DELETE FROM guest_sessions WHERE token = $1`, s.token)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
