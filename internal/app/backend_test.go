package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban/internal/config"
	"kanban/internal/db"
	"kanban/internal/store"
)

func TestOpenBackendSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Storage.Driver = store.DriverSQLite
	cfg.Storage.SQLite.Workspace = t.TempDir()

	b, err := OpenBackend(ctx, cfg)
	require.NoError(t, err)
	defer b.Close(ctx)

	assert.Equal(t, store.DriverSQLite, b.Driver)
	assert.NoError(t, b.Ping(ctx))
	_, err = os.Stat(db.Path(cfg.Storage.SQLite.Workspace))
	assert.NoError(t, err)

	docs, err := b.Tasks.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestOpenBackendSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()
	cfg.Storage.Driver = store.DriverSQLite
	cfg.Storage.SQLite.Workspace = filepath.Join(t.TempDir(), "ws")

	b, err := OpenBackend(ctx, cfg)
	require.NoError(t, err)
	id, err := b.Projects.Insert(ctx, map[string]any{"name": "kept"})
	require.NoError(t, err)
	require.NoError(t, b.Close(ctx))

	b, err = OpenBackend(ctx, cfg)
	require.NoError(t, err)
	defer b.Close(ctx)
	_, err = b.Projects.FindByID(ctx, id)
	assert.NoError(t, err)
}

func TestOpenBackendRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Driver = "postgres"
	_, err := OpenBackend(context.Background(), cfg)
	assert.Error(t, err)
}
