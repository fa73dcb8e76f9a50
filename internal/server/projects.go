package server

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"kanban/internal/engine"
)

type projectPath struct {
	ID string `path:"id" doc:"Project identifier (24-character hex)"`
}

func registerProjects(api huma.API, e engine.Engine) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-project",
		Method:        http.MethodPost,
		Path:          "/projects",
		Summary:       "Create project",
		Tags:          []string{"projects"},
		DefaultStatus: http.StatusOK,
		Errors:        []int{http.StatusBadRequest, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		Body ProjectRequest `json:"body"`
	}) (*struct {
		Body ProjectResponse `json:"body"`
	}, error) {
		in, err := input.Body.input()
		if err != nil {
			return nil, handleError("Project", err)
		}
		t, err := e.CreateProject(ctx, in)
		if err != nil {
			return nil, handleError("Project", err)
		}
		return &struct {
			Body ProjectResponse `json:"body"`
		}{Body: projectResponse(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects",
		Tags:        []string{"projects"},
		Errors:      []int{http.StatusInternalServerError},
	}, func(ctx context.Context, _ *struct{}) (*struct {
		Body []ProjectResponse `json:"body"`
	}, error) {
		items, err := e.ListProjects(ctx)
		if err != nil {
			return nil, handleError("Project", err)
		}
		return &struct {
			Body []ProjectResponse `json:"body"`
		}{Body: mapProjects(items)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{id}",
		Summary:     "Get project",
		Tags:        []string{"projects"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	}, func(ctx context.Context, input *projectPath) (*struct {
		Body ProjectResponse `json:"body"`
	}, error) {
		t, err := e.GetProject(ctx, input.ID)
		if err != nil {
			return nil, handleError("Project", err)
		}
		return &struct {
			Body ProjectResponse `json:"body"`
		}{Body: projectResponse(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-project",
		Method:      http.MethodPut,
		Path:        "/projects/{id}",
		Summary:     "Replace project",
		Tags:        []string{"projects"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	}, func(ctx context.Context, input *struct {
		ID   string         `path:"id" doc:"Project identifier (24-character hex)"`
		Body ProjectRequest `json:"body"`
	}) (*struct {
		Body ProjectResponse `json:"body"`
	}, error) {
		in, err := input.Body.input()
		if err != nil {
			return nil, handleError("Project", err)
		}
		t, err := e.UpdateProject(ctx, input.ID, in)
		if err != nil {
			return nil, handleError("Project", err)
		}
		return &struct {
			Body ProjectResponse `json:"body"`
		}{Body: projectResponse(t)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-project",
		Method:      http.MethodDelete,
		Path:        "/projects/{id}",
		Summary:     "Delete project",
		Tags:        []string{"projects"},
		Errors:      []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError},
	}, func(ctx context.Context, input *projectPath) (*struct {
		Body MessageResponse `json:"body"`
	}, error) {
		if err := e.DeleteProject(ctx, input.ID); err != nil {
			return nil, handleError("Project", err)
		}
		return &struct {
			Body MessageResponse `json:"body"`
		}{Body: MessageResponse{Message: "Project deleted successfully"}}, nil
	})
}
