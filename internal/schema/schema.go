// Package schema creates the tables behind the embedded document store.
// MongoDB needs no schema; collections appear on first insert.
package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed sql/*.sql
var files embed.FS

// Bootstrap runs every embedded statement file in name order inside one
// transaction. Each file must be idempotent (CREATE ... IF NOT EXISTS), so
// Bootstrap is safe on every open.
func Bootstrap(ctx context.Context, db *sql.DB) error {
	names, err := fs.Glob(files, "sql/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("bootstrap schema: %w", err)
	}
	defer tx.Rollback()
	for _, name := range names {
		stmt, err := files.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("bootstrap %s: %w", name, err)
		}
	}
	return tx.Commit()
}
