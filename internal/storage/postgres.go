package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/egil10/nordnotat/internal/marketplace"
)

// Store is the Postgres-backed entitlement store. It implements
// marketplace.DocumentStore, PurchaseStore and FlashcardStore.
//
// Uniqueness constraints on purchases(buyer_id, document_id) and
// purchases(payment_id) are the authoritative guards against the
// duplicate-purchase race and webhook redelivery; see the migrations.
type Store struct {
	pool *pgxpool.Pool
}

// New connects a pool and verifies the connection.
func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// storeErr marks a low-level failure as transient so webhook handling
// can refuse to acknowledge and let the processor retry.
func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", marketplace.ErrStoreUnavailable, op, err)
}
