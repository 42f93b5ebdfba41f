package postgres

import (
	"context"
	"fmt"

	"jobportal/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store implements storage.Store on a pgx pool or an open transaction.
type Store struct {
	pool *pgxpool.Pool // nil inside a transaction
	db   Querier
}

// NewStore creates a Store backed by pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

var _ storage.Store = (*Store)(nil)

func (s *Store) Users() storage.UserRepository               { return NewUserRepo(s.db) }
func (s *Store) Profiles() storage.ProfileRepository         { return NewProfileRepo(s.db) }
func (s *Store) Jobs() storage.JobRepository                 { return NewJobRepo(s.db) }
func (s *Store) Applications() storage.ApplicationRepository { return NewApplicationRepo(s.db) }
func (s *Store) SavedJobs() storage.SavedJobRepository       { return NewSavedJobRepo(s.db) }

// WithTx runs fn inside a transaction. Nested calls reuse the outer transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx storage.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if err := fn(&Store{db: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}
