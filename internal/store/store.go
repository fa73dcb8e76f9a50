// Package store provides document collections keyed by ObjectID.
package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kanban/internal/domain"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

// Collection is CRUD access to one named group of documents.
//
// Missing documents are reported as domain.ErrNotFound; any other failure is
// a domain.StorageError.
type Collection interface {
	// Insert stores doc under a newly generated identifier. doc must not carry _id.
	Insert(ctx context.Context, doc any) (primitive.ObjectID, error)
	// FindAll returns every document in storage-native order.
	FindAll(ctx context.Context) ([]bson.Raw, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error)
	// Replace swaps every field of the matching document for doc's, keeping _id.
	Replace(ctx context.Context, id primitive.ObjectID, doc any) (ReplaceResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ReplaceResult mirrors the driver's matched/modified counters.
type ReplaceResult struct {
	Matched  int64
	Modified int64
}

// Backend is the process-wide storage handle: both collections plus health.
type Backend struct {
	Driver   string
	Tasks    Collection
	Projects Collection

	ping  func(context.Context) error
	close func(context.Context) error
}

// Ping checks that the backend is reachable.
func (b *Backend) Ping(ctx context.Context) error {
	if b.ping == nil {
		return nil
	}
	return b.ping(ctx)
}

// Close releases the underlying connection.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// ParseID parses the 24-character hex form of an ObjectID.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q is not a 24-character hex object id", domain.ErrInvalidID, s)
	}
	return id, nil
}

// withID encodes doc with _id set to id as the first element.
func withID(id primitive.ObjectID, doc any) ([]byte, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var fields bson.D
	if err := bson.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	out := make(bson.D, 0, len(fields)+1)
	out = append(out, bson.E{Key: "_id", Value: id})
	for _, f := range fields {
		if f.Key == "_id" {
			continue
		}
		out = append(out, f)
	}
	return bson.Marshal(out)
}

func storageErr(op string, err error) error {
	return domain.StorageError{Op: op, Err: err}
}
