package repo

import (
	"context"

	"kanban/internal/domain"
	"kanban/internal/mapper"
	"kanban/internal/store"
)

// Projects is CRUD access to the project collection.
type Projects struct {
	Coll store.Collection
}

func (r Projects) Create(ctx context.Context, in domain.ProjectInput) (domain.Project, error) {
	doc, err := mapper.ProjectToDocument(in)
	if err != nil {
		return domain.Project{}, err
	}
	id, err := r.Coll.Insert(ctx, doc)
	if err != nil {
		return domain.Project{}, err
	}
	return getAs(ctx, r.Coll, id, mapper.ProjectFromRaw)
}

func (r Projects) List(ctx context.Context) ([]domain.Project, error) {
	return listAs(ctx, r.Coll, mapper.ProjectFromRaw)
}

func (r Projects) Get(ctx context.Context, id string) (domain.Project, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return domain.Project{}, err
	}
	return getAs(ctx, r.Coll, oid, mapper.ProjectFromRaw)
}

// Update replaces every field of the project except its identifier. Writing
// values identical to the stored ones succeeds.
func (r Projects) Update(ctx context.Context, id string, in domain.ProjectInput) (domain.Project, error) {
	oid, err := store.ParseID(id)
	if err != nil {
		return domain.Project{}, err
	}
	doc, err := mapper.ProjectToDocument(in)
	if err != nil {
		return domain.Project{}, err
	}
	if _, err := r.Coll.Replace(ctx, oid, doc); err != nil {
		return domain.Project{}, err
	}
	return getAs(ctx, r.Coll, oid, mapper.ProjectFromRaw)
}

func (r Projects) Delete(ctx context.Context, id string) error {
	oid, err := store.ParseID(id)
	if err != nil {
		return err
	}
	return r.Coll.Delete(ctx, oid)
}
