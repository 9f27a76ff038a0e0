package setup

import (
	"context"
	"fmt"

	"github.com/itchan-dev/ohqueue/internal/api"
	"github.com/itchan-dev/ohqueue/internal/handler"
	"github.com/itchan-dev/ohqueue/internal/markdown"
	"github.com/itchan-dev/ohqueue/internal/service"
	"github.com/itchan-dev/ohqueue/internal/storage/memory"
	"github.com/itchan-dev/ohqueue/internal/storage/pg"
	"github.com/itchan-dev/ohqueue/internal/storage/sqlite"
	"github.com/itchan-dev/ohqueue/shared/config"
	"github.com/itchan-dev/ohqueue/shared/logger"
)

// Storage is what the process needs from a backend beyond the service contract.
type Storage interface {
	service.Storage
	Ping(ctx context.Context) error
	Cleanup() error
}

type Dependencies struct {
	Config  *config.Config
	Storage Storage
	Handler *handler.Handler
	API     *api.Handler
}

func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	store, err := NewStorage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	templates, err := handler.LoadTemplates()
	if err != nil {
		store.Cleanup()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	queue := service.NewQueue(store)
	return &Dependencies{
		Config:  cfg,
		Storage: store,
		Handler: handler.New(templates, queue, markdown.New(), store),
		API:     api.New(queue),
	}, nil
}

// NewStorage opens the backend selected by storage.driver.
func NewStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	driver := cfg.Public.Storage.Driver
	logger.Log.Info("initializing storage", "driver", driver)
	switch driver {
	case config.DriverPostgres:
		return pg.New(ctx, cfg.Private.Pg)
	case config.DriverSqlite:
		return sqlite.New(ctx, cfg.Public.Storage.SqlitePath)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

func (d *Dependencies) Cleanup() error {
	return d.Storage.Cleanup()
}
