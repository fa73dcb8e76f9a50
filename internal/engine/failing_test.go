package engine_test

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kanban/internal/domain"
	"kanban/internal/store"
)

// failingCollection fails every call with a storage error.
type failingCollection struct{ err error }

func (f failingCollection) fail(op string) error { return domain.StorageError{Op: op, Err: f.err} }

func (f failingCollection) Insert(context.Context, any) (primitive.ObjectID, error) {
	return primitive.NilObjectID, f.fail("insert")
}

func (f failingCollection) FindAll(context.Context) ([]bson.Raw, error) {
	return nil, f.fail("find")
}

func (f failingCollection) FindByID(context.Context, primitive.ObjectID) (bson.Raw, error) {
	return nil, f.fail("find one")
}

func (f failingCollection) Replace(context.Context, primitive.ObjectID, any) (store.ReplaceResult, error) {
	return store.ReplaceResult{}, f.fail("replace")
}

func (f failingCollection) Delete(context.Context, primitive.ObjectID) error {
	return f.fail("delete")
}
