package domain

// TaskInput is a task as supplied by a caller: every field except the identifier.
type TaskInput struct {
	Title       string
	Description string
	Status      string
	StartDate   Date
	EndDate     Date
	AssignedTo  string
}

// Task is a stored task rendered for callers.
type Task struct {
	ID          string
	Title       string
	Description string
	Status      string
	StartDate   Date
	EndDate     Date
	AssignedTo  string
}

// Input returns the caller-owned fields of t.
func (t Task) Input() TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		AssignedTo:  t.AssignedTo,
	}
}

// ProjectInput is a project as supplied by a caller.
type ProjectInput struct {
	Name        string
	Description string
	Status      string
	Progress    int
	Team        []string
	DueDate     Date
	Priority    string
}

// Project is a stored project rendered for callers.
type Project struct {
	ID          string
	Name        string
	Description string
	Status      string
	Progress    int
	Team        []string
	DueDate     Date
	Priority    string
}

// Input returns the caller-owned fields of p.
func (p Project) Input() ProjectInput {
	return ProjectInput{
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Progress:    p.Progress,
		Team:        p.Team,
		DueDate:     p.DueDate,
		Priority:    p.Priority,
	}
}

const (
	MinProgress = 0
	MaxProgress = 100
)
