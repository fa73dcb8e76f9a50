package kanbansdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal Kanban HTTP API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		Timeout: 10 * time.Second,
	}
}

// Task is the API task record. Dates are YYYY-MM-DD.
type Task struct {
	ID          string `json:"_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	AssignedTo  string `json:"assigned_to"`
}

// Project is the API project record.
type Project struct {
	ID          string   `json:"_id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Progress    int      `json:"progress"`
	Team        []string `json:"team"`
	DueDate     string   `json:"dueDate"`
	Priority    string   `json:"priority"`
}

// ConnectionStatus is the /check-connection result.
type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: status=%d code=%s message=%s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// Health calls GET / and returns the service message.
func (c *Client) Health(ctx context.Context) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodGet, "", nil, &resp)
	return resp.Message, err
}

// CheckConnection reports whether the API can reach its storage.
func (c *Client) CheckConnection(ctx context.Context) (ConnectionStatus, error) {
	var resp ConnectionStatus
	err := c.do(ctx, http.MethodGet, "check-connection", nil, &resp)
	return resp, err
}

// CreateTask creates a task. Any ID on t is ignored by the server.
func (c *Client) CreateTask(ctx context.Context, t Task) (Task, error) {
	t.ID = ""
	var resp Task
	err := c.do(ctx, http.MethodPost, "tasks", t, &resp)
	return resp, err
}

// ListTasks returns every task.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	resp := []Task{}
	err := c.do(ctx, http.MethodGet, "tasks", nil, &resp)
	return resp, err
}

// GetTask fetches a task by id.
func (c *Client) GetTask(ctx context.Context, id string) (Task, error) {
	var resp Task
	err := c.do(ctx, http.MethodGet, "tasks/"+url.PathEscape(id), nil, &resp)
	return resp, err
}

// UpdateTask replaces every field of the task with id.
func (c *Client) UpdateTask(ctx context.Context, id string, t Task) (Task, error) {
	t.ID = ""
	var resp Task
	err := c.do(ctx, http.MethodPut, "tasks/"+url.PathEscape(id), t, &resp)
	return resp, err
}

// DeleteTask removes a task and returns the server message.
func (c *Client) DeleteTask(ctx context.Context, id string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodDelete, "tasks/"+url.PathEscape(id), nil, &resp)
	return resp.Message, err
}

// CreateProject creates a project.
func (c *Client) CreateProject(ctx context.Context, p Project) (Project, error) {
	p.ID = ""
	if p.Team == nil {
		p.Team = []string{}
	}
	var resp Project
	err := c.do(ctx, http.MethodPost, "projects", p, &resp)
	return resp, err
}

// ListProjects returns every project.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	resp := []Project{}
	err := c.do(ctx, http.MethodGet, "projects", nil, &resp)
	return resp, err
}

// GetProject fetches a project by id.
func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	var resp Project
	err := c.do(ctx, http.MethodGet, "projects/"+url.PathEscape(id), nil, &resp)
	return resp, err
}

// UpdateProject replaces every field of the project with id.
func (c *Client) UpdateProject(ctx context.Context, id string, p Project) (Project, error) {
	p.ID = ""
	if p.Team == nil {
		p.Team = []string{}
	}
	var resp Project
	err := c.do(ctx, http.MethodPut, "projects/"+url.PathEscape(id), p, &resp)
	return resp, err
}

// DeleteProject removes a project and returns the server message.
func (c *Client) DeleteProject(ctx context.Context, id string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodDelete, "projects/"+url.PathEscape(id), nil, &resp)
	return resp.Message, err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	url := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(b)}
		var env struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(b, &env) == nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
