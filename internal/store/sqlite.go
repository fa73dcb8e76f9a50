package store

import (
	"context"
	"database/sql"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kanban/internal/domain"
)

// SQLiteCollection is a Collection stored as BSON blobs in the documents table.
type SQLiteCollection struct {
	DB   *sql.DB
	Name string
}

func (c SQLiteCollection) Insert(ctx context.Context, doc any) (primitive.ObjectID, error) {
	id := primitive.NewObjectID()
	data, err := withID(id, doc)
	if err != nil {
		return primitive.NilObjectID, storageErr("insert", err)
	}
	_, err = c.DB.ExecContext(ctx, `INSERT INTO documents(collection,id,doc) VALUES (?,?,?)`, c.Name, id.Hex(), data)
	if err != nil {
		return primitive.NilObjectID, storageErr("insert", err)
	}
	return id, nil
}

func (c SQLiteCollection) FindAll(ctx context.Context) ([]bson.Raw, error) {
	rows, err := c.DB.QueryContext(ctx, `SELECT doc FROM documents WHERE collection=? ORDER BY rowid`, c.Name)
	if err != nil {
		return nil, storageErr("find", err)
	}
	defer rows.Close()
	docs := []bson.Raw{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, storageErr("find", err)
		}
		docs = append(docs, bson.Raw(data))
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("find", err)
	}
	return docs, nil
}

func (c SQLiteCollection) FindByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error) {
	var data []byte
	err := c.DB.QueryRowContext(ctx, `SELECT doc FROM documents WHERE collection=? AND id=?`, c.Name, id.Hex()).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, storageErr("find one", err)
	}
	return bson.Raw(data), nil
}

// Replace writes doc in a single statement so concurrent writers only wait
// on the database lock. A row whose stored bytes already equal doc is left
// untouched and reported as matched but not modified.
func (c SQLiteCollection) Replace(ctx context.Context, id primitive.ObjectID, doc any) (ReplaceResult, error) {
	data, err := withID(id, doc)
	if err != nil {
		return ReplaceResult{}, storageErr("replace", err)
	}
	res, err := c.DB.ExecContext(ctx, `UPDATE documents SET doc=? WHERE collection=? AND id=? AND doc IS NOT ?`, data, c.Name, id.Hex(), data)
	if err != nil {
		return ReplaceResult{}, storageErr("replace", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ReplaceResult{}, storageErr("replace", err)
	}
	if n > 0 {
		return ReplaceResult{Matched: n, Modified: n}, nil
	}
	var one int
	err = c.DB.QueryRowContext(ctx, `SELECT 1 FROM documents WHERE collection=? AND id=?`, c.Name, id.Hex()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ReplaceResult{}, domain.ErrNotFound
	}
	if err != nil {
		return ReplaceResult{}, storageErr("replace", err)
	}
	return ReplaceResult{Matched: 1}, nil
}

func (c SQLiteCollection) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.DB.ExecContext(ctx, `DELETE FROM documents WHERE collection=? AND id=?`, c.Name, id.Hex())
	if err != nil {
		return storageErr("delete", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("delete", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NewSQLiteBackend wraps an open database with its schema bootstrapped as a Backend.
func NewSQLiteBackend(conn *sql.DB, tasks, projects string) *Backend {
	return &Backend{
		Driver:   DriverSQLite,
		Tasks:    SQLiteCollection{DB: conn, Name: tasks},
		Projects: SQLiteCollection{DB: conn, Name: projects},
		ping:     conn.PingContext,
		close: func(context.Context) error {
			return conn.Close()
		},
	}
}
