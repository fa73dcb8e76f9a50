package repo

import (
	"context"

	"kanban/internal/domain"
	"kanban/internal/mapper"
	"kanban/internal/store"
)

// Tasks is CRUD access to the task collection.
type Tasks struct {
	Coll store.Collection
}

// Create validates in, stores it under a new identifier and returns it as stored.
func (r Tasks) Create(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	doc, err := mapper.TaskToDocument(in)
	if err != nil {
		return domain.Task{}, err
	}
	id, err := r.Coll.Insert(ctx, doc)
	if err != nil {
		return domain.Task{}, err
	}
	return getAs(ctx, r.Coll, id, mapper.TaskFromRaw)
}

func (r Tasks) List(ctx context.Context) ([]domain.Task, error) {
	return listAs(ctx, r.Coll, mapper.TaskFromRaw)
}

func (r Tasks) Get(ctx context.Context, id string) (domain.Task, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return domain.Task{}, err
	}
	return getAs(ctx, r.Coll, oid, mapper.TaskFromRaw)
}

// Update replaces every field of the task except its identifier. Writing
// values identical to the stored ones succeeds.
func (r Tasks) Update(ctx context.Context, id string, in domain.TaskInput) (domain.Task, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return domain.Task{}, err
	}
	doc, err := mapper.TaskToDocument(in)
	if err != nil {
		return domain.Task{}, err
	}
	if _, err := r.Coll.Replace(ctx, oid, doc); err != nil {
		return domain.Task{}, err
	}
	return getAs(ctx, r.Coll, oid, mapper.TaskFromRaw)
}

func (r Tasks) Delete(ctx context.Context, id string) error {
	oid, err := store.ParseID(id)
	if err != nil {
		return err
	}
	return r.Coll.Delete(ctx, oid)
}
