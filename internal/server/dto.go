package server

import (
	"kanban/internal/domain"
)

// Request payloads

type TaskRequest struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Title       string   `json:"title" example:"Design spec"`
	Description string   `json:"description" example:"Write it"`
	Status      string   `json:"status" example:"todo" doc:"Free-form column label, e.g. todo, in-progress, done"`
	StartDate   string   `json:"start_date" format:"date" example:"2024-01-01"`
	EndDate     string   `json:"end_date" format:"date" example:"2024-01-05"`
	AssignedTo  string   `json:"assigned_to" example:"alice"`
}

type ProjectRequest struct {
	_           struct{} `json:"-" additionalProperties:"true"`
	Name        string   `json:"name" example:"Website relaunch"`
	Description string   `json:"description"`
	Status      string   `json:"status" example:"active"`
	Progress    int      `json:"progress" minimum:"0" maximum:"100" example:"40"`
	Team        []string `json:"team"`
	DueDate     string   `json:"dueDate" format:"date" example:"2024-06-30"`
	Priority    string   `json:"priority" example:"high"`
}

// Response payloads

type TaskResponse struct {
	ID          string `json:"_id" example:"65a1f0c2e4b0a1b2c3d4e5f6"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date" format:"date"`
	EndDate     string `json:"end_date" format:"date"`
	AssignedTo  string `json:"assigned_to"`
}

type ProjectResponse struct {
	ID          string   `json:"_id" example:"65a1f0c2e4b0a1b2c3d4e5f6"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Progress    int      `json:"progress"`
	Team        []string `json:"team"`
	DueDate     string   `json:"dueDate" format:"date"`
	Priority    string   `json:"priority"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ConnectionResponse struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

func parseDateField(field, v string) (domain.Date, error) {
	d, err := domain.ParseDate(v)
	if err != nil {
		return domain.Date{}, domain.ValidationError{Field: field, Reason: err.Error()}
	}
	return d, nil
}

func (r TaskRequest) input() (domain.TaskInput, error) {
	start, err := parseDateField("start_date", r.StartDate)
	if err != nil {
		return domain.TaskInput{}, err
	}
	end, err := parseDateField("end_date", r.EndDate)
	if err != nil {
		return domain.TaskInput{}, err
	}
	return domain.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		StartDate:   start,
		EndDate:     end,
		AssignedTo:  r.AssignedTo,
	}, nil
}

func (r ProjectRequest) input() (domain.ProjectInput, error) {
	due, err := parseDateField("dueDate", r.DueDate)
	if err != nil {
		return domain.ProjectInput{}, err
	}
	return domain.ProjectInput{
		Name:        r.Name,
		Description: r.Description,
		Status:      r.Status,
		Progress:    r.Progress,
		Team:        r.Team,
		DueDate:     due,
		Priority:    r.Priority,
	}, nil
}

func taskResponse(t domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		StartDate:   t.StartDate.String(),
		EndDate:     t.EndDate.String(),
		AssignedTo:  t.AssignedTo,
	}
}

func projectResponse(p domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		Progress:    p.Progress,
		Team:        nonNilSlice(p.Team),
		DueDate:     p.DueDate.String(),
		Priority:    p.Priority,
	}
}

func mapTasks(items []domain.Task) []TaskResponse {
	res := make([]TaskResponse, 0, len(items))
	for _, t := range items {
		res = append(res, taskResponse(t))
	}
	return res
}

func mapProjects(items []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, 0, len(items))
	for _, p := range items {
		res = append(res, projectResponse(p))
	}
	return res
}

func nonNilSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
