package app

import (
	"context"
	"fmt"

	"kanban/internal/config"
	"kanban/internal/db"
	"kanban/internal/schema"
	"kanban/internal/store"
)

// OpenBackend builds the storage backend selected by cfg and verifies it
// answers before returning. The caller owns the returned backend and must
// Close it at shutdown.
func OpenBackend(ctx context.Context, cfg *config.Config) (*store.Backend, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	coll := cfg.Storage.Collections
	switch cfg.Storage.Driver {
	case store.DriverMongo:
		return store.OpenMongo(ctx, store.MongoOptions{
			URI:                cfg.Storage.Mongo.URI,
			Database:           cfg.Storage.Mongo.Database,
			TasksCollection:    coll.Tasks,
			ProjectsCollection: coll.Projects,
			ConnectTimeout:     cfg.Storage.Mongo.ConnectTimeout,
		})
	case store.DriverSQLite:
		conn, err := db.Open(db.Config{Workspace: cfg.Storage.SQLite.Workspace})
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := schema.Bootstrap(ctx, conn); err != nil {
			conn.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
		b := store.NewSQLiteBackend(conn, coll.Tasks, coll.Projects)
		if err := b.Ping(ctx); err != nil {
			b.Close(ctx)
			return nil, fmt.Errorf("ping sqlite: %w", err)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
