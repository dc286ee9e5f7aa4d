package store

import (
	"context"
	"database/sql"
)

// Store provides access to all storage repositories.
type Store struct {
	db           *sql.DB
	translations *TranslationStore
}

func NewStore(db *sql.DB) *Store {
	interceptor := newQueryInterceptor(db)
	return &Store{
		db:           db,
		translations: NewTranslationStore(interceptor),
	}
}

func (s *Store) Translations() *TranslationStore {
	return s.translations
}

// Ping verifies the database is still reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}
