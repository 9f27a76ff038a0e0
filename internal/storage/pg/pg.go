// Package pg stores queues and posts in PostgreSQL.
package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/itchan-dev/ohqueue/shared/config"
	"github.com/itchan-dev/ohqueue/shared/logger"
	sharedpg "github.com/itchan-dev/ohqueue/shared/storage/pg"
)

//go:embed migrations/init.sql
var schema string

type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg config.Pg) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Host, "port", cfg.Port, "dbname", cfg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, sharedpg.DefaultConnectionConfig())
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")

	if err := sharedpg.WithTx(ctx, db, func(tx *sql.Tx) error {
		return migrate(ctx, tx)
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Storage{db: db}, nil
}

func migrate(ctx context.Context, q sharedpg.Querier) error {
	_, err := q.ExecContext(ctx, schema)
	return err
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
