package mapper

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kanban/internal/domain"
)

// ProjectDocument is the persisted shape of a project.
type ProjectDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
	Progress    int                `bson:"progress"`
	Team        []string           `bson:"team"`
	DueDate     string             `bson:"dueDate"`
	Priority    string             `bson:"priority"`
}

// ProjectToDocument validates in and converts it to a document without identifier.
// A nil team is stored as an empty list.
func ProjectToDocument(in domain.ProjectInput) (ProjectDocument, error) {
	for _, check := range []error{
		requireText("name", in.Name),
		requireText("status", in.Status),
		requireText("priority", in.Priority),
		requireDate("dueDate", in.DueDate),
		checkProgress(in.Progress),
	} {
		if check != nil {
			return ProjectDocument{}, check
		}
	}
	team := make([]string, len(in.Team))
	copy(team, in.Team)
	return ProjectDocument{
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		Progress:    in.Progress,
		Team:        team,
		DueDate:     in.DueDate.String(),
		Priority:    in.Priority,
	}, nil
}

func checkProgress(p int) error {
	if p < domain.MinProgress || p > domain.MaxProgress {
		return domain.ValidationError{
			Field:  "progress",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", domain.MinProgress, domain.MaxProgress, p),
		}
	}
	return nil
}

// ProjectFromRaw renders a persisted project document for callers.
func ProjectFromRaw(raw bson.Raw) (domain.Project, error) {
	r := docReader{raw: raw}
	p := domain.Project{
		ID:          r.id(),
		Name:        r.str("name"),
		Description: r.str("description"),
		Status:      r.str("status"),
		Progress:    r.integer("progress"),
		Team:        r.strings("team"),
		DueDate:     r.date("dueDate"),
		Priority:    r.str("priority"),
	}
	if r.err != nil {
		return domain.Project{}, r.err
	}
	return p, nil
}
