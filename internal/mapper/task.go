package mapper

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kanban/internal/domain"
)

// TaskDocument is the persisted shape of a task.
type TaskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	StartDate   string             `bson:"start_date"`
	EndDate     string             `bson:"end_date"`
	AssignedTo  string             `bson:"assigned_to"`
}

// TaskToDocument validates in and converts it to a document without identifier.
func TaskToDocument(in domain.TaskInput) (TaskDocument, error) {
	for _, check := range []error{
		requireText("title", in.Title),
		requireText("status", in.Status),
		requireDate("start_date", in.StartDate),
		requireDate("end_date", in.EndDate),
	} {
		if check != nil {
			return TaskDocument{}, check
		}
	}
	return TaskDocument{
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		StartDate:   in.StartDate.String(),
		EndDate:     in.EndDate.String(),
		AssignedTo:  in.AssignedTo,
	}, nil
}

// TaskFromRaw renders a persisted task document for callers.
func TaskFromRaw(raw bson.Raw) (domain.Task, error) {
	r := docReader{raw: raw}
	t := domain.Task{
		ID:          r.id(),
		Title:       r.str("title"),
		Description: r.str("description"),
		Status:      r.str("status"),
		StartDate:   r.date("start_date"),
		EndDate:     r.date("end_date"),
		AssignedTo:  r.str("assigned_to"),
	}
	if r.err != nil {
		return domain.Task{}, r.err
	}
	return t, nil
}
