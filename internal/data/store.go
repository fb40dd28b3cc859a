package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/target/t1250-loader/internal/core"
	"github.com/target/t1250-loader/internal/data/pgxutil"
)

// Store runs loader work in pgx transactions over a database/sql pool.
type Store struct {
	DB *sql.DB
	// TxOptions defaults to read committed, read write.
	TxOptions *sql.TxOptions
}

var _ core.Store = (*Store)(nil)

// NewStore creates a new Store.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db, TxOptions: &sql.TxOptions{Isolation: sql.LevelReadCommitted}}
}

// WithinTx runs fn with an EntityRepo bound to a new transaction. The
// transaction commits only when fn returns nil; fn's error is returned as is.
func (s *Store) WithinTx(ctx context.Context, fn func(entities core.EntityRepository) error) error {
	return pgxutil.WithPgxTx(ctx, s.DB, pgxutil.TxConfig{
		Opts: s.TxOptions,
		Fn: func(tx pgx.Tx) error {
			return fn(NewEntityRepo(tx))
		},
	})
}
