package setup

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/itchan-dev/ohqueue/internal/storage/memory"
	"github.com/itchan-dev/ohqueue/internal/storage/sqlite"
	"github.com/itchan-dev/ohqueue/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cfgWithStorage(s config.Storage) *config.Config {
	return &config.Config{Public: config.Public{Storage: s}}
}

func TestNewStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, err := NewStorage(ctx, cfgWithStorage(config.Storage{Driver: config.DriverMemory}))
		require.NoError(t, err)
		assert.IsType(t, &memory.Storage{}, store)
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ohqueue.db")
		store, err := NewStorage(ctx, cfgWithStorage(config.Storage{Driver: config.DriverSqlite, SqlitePath: path}))
		require.NoError(t, err)
		t.Cleanup(func() { store.Cleanup() })
		assert.IsType(t, &sqlite.Storage{}, store)
		assert.NoError(t, store.Ping(ctx))
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewStorage(ctx, cfgWithStorage(config.Storage{Driver: "redis"}))
		assert.ErrorContains(t, err, "unknown storage driver")
	})
}

func TestSetupDependencies(t *testing.T) {
	deps, err := SetupDependencies(context.Background(), cfgWithStorage(config.Storage{Driver: config.DriverMemory}))
	require.NoError(t, err)
	t.Cleanup(func() { deps.Cleanup() })

	assert.NotNil(t, deps.Handler)
	assert.NotNil(t, deps.API)
	assert.Contains(t, deps.Handler.Templates, "queue.html")
}
