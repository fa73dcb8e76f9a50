package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kanban/internal/store"
)

// Repo groups the task and project repositories over one storage backend.
type Repo struct {
	Tasks    Tasks
	Projects Projects
}

func New(b *store.Backend) Repo {
	return Repo{
		Tasks:    Tasks{Coll: b.Tasks},
		Projects: Projects{Coll: b.Projects},
	}
}

func listAs[T any](ctx context.Context, c store.Collection, decode func(bson.Raw) (T, error)) ([]T, error) {
	docs, err := c.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, raw := range docs {
		v, err := decode(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func getAs[T any](ctx context.Context, c store.Collection, id primitive.ObjectID, decode func(bson.Raw) (T, error)) (T, error) {
	raw, err := c.FindByID(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return decode(raw)
}
