package engine

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"kanban/internal/domain"
	"kanban/internal/logging"
	"kanban/internal/repo"
	"kanban/internal/store"
)

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Engine runs task and project operations against one shared backend.
//
// Each operation logs on receipt, success and failure, and runs its storage
// calls detached from caller cancellation so a disconnecting client never
// leaves a write half-observed.
type Engine struct {
	Repo   repo.Repo
	Health HealthChecker
	Log    log.FieldLogger
}

func New(b *store.Backend, logger log.FieldLogger) Engine {
	return Engine{
		Repo:   repo.New(b),
		Health: b,
		Log:    logger,
	}
}

// ConnectionStatus is the result of a storage ping.
type ConnectionStatus struct {
	Connected bool
	Err       error
}

// CheckConnection pings storage. It never fails; the outcome is in the status.
func (e Engine) CheckConnection(ctx context.Context) ConnectionStatus {
	entry := logging.FromContext(ctx, e.Log).WithField("op", "storage.ping")
	if e.Health == nil {
		return ConnectionStatus{Connected: true}
	}
	if err := e.Health.Ping(ctx); err != nil {
		entry.WithError(err).Warn("storage.ping.failed")
		return ConnectionStatus{Err: err}
	}
	entry.Debug("storage.ping.succeeded")
	return ConnectionStatus{Connected: true}
}

func (e Engine) begin(ctx context.Context, op string, fields log.Fields) (context.Context, *log.Entry) {
	entry := logging.FromContext(ctx, e.Log).WithField("op", op).WithFields(fields)
	entry.Info(op + ".received")
	return context.WithoutCancel(ctx), entry
}

func finish(entry *log.Entry, op string, err error, fields log.Fields) {
	if err == nil {
		entry.WithFields(fields).Info(op + ".succeeded")
		return
	}
	entry = entry.WithError(err)
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidID), domain.IsValidation(err):
		entry.Warn(op + ".failed")
	default:
		entry.Error(op + ".failed")
	}
}

func (e Engine) CreateTask(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	const op = "task.create"
	ctx, entry := e.begin(ctx, op, log.Fields{"title": in.Title})
	t, err := e.Repo.Tasks.Create(ctx, in)
	finish(entry, op, err, log.Fields{"id": t.ID})
	return t, err
}

func (e Engine) ListTasks(ctx context.Context) ([]domain.Task, error) {
	const op = "task.list"
	ctx, entry := e.begin(ctx, op, nil)
	items, err := e.Repo.Tasks.List(ctx)
	finish(entry, op, err, log.Fields{"count": len(items)})
	return items, err
}

func (e Engine) GetTask(ctx context.Context, id string) (domain.Task, error) {
	const op = "task.get"
	ctx, entry := e.begin(ctx, op, log.Fields{"id": id})
	t, err := e.Repo.Tasks.Get(ctx, id)
	finish(entry, op, err, nil)
	return t, err
}

func (e Engine) UpdateTask(ctx context.Context, id string, in domain.TaskInput) (domain.Task, error) {
	const op = "task.update"
	ctx, entry := e.begin(ctx, op, log.Fields{"id": id})
	t, err := e.Repo.Tasks.Update(ctx, id, in)
	finish(entry, op, err, nil)
	return t, err
}

func (e Engine) DeleteTask(ctx context.Context, id string) error {
	const op = "task.delete"
	ctx, entry := e.begin(ctx, op, log.Fields{"id": id})
	err := e.Repo.Tasks.Delete(ctx, id)
	finish(entry, op, err, nil)
	return err
}

func (e Engine) CreateProject(ctx context.Context, in domain.ProjectInput) (domain.Project, error) {
	const op = "project.create"
	ctx, entry := e.begin(ctx, op, log.Fields{"name": in.Name})
	p, err := e.Repo.Projects.Create(ctx, in)
	finish(entry, op, err, log.Fields{"id": p.ID})
	return p, err
}

func (e Engine) ListProjects(ctx context.Context) ([]domain.Project, error) {
	const op = "project.list"
	ctx, entry := e.begin(ctx, op, nil)
	items, err := e.Repo.Projects.List(ctx)
	finish(entry, op, err, log.Fields{"count": len(items)})
	return items, err
}

func (e Engine) GetProject(ctx context.Context, id string) (domain.Project, error) {
	const op = "project.get"
	ctx, entry := e.begin(ctx, op, log.Fields{"id": id})
	p, err := e.Repo.Projects.Get(ctx, id)
	finish(entry, op, err, nil)
	return p, err
}

func (e Engine) UpdateProject(ctx context.Context, id string, in domain.ProjectInput) (domain.Project, error) {
	const op = "project.update"
	ctx, entry := e.begin(ctx, op, log.Fields{"id": id})
	p, err := e.Repo.Projects.Update(ctx, id, in)
	finish(entry, op, err, nil)
	return p, err
}

func (e Engine) DeleteProject(ctx context.Context, id string) error {
	const op = "project.delete"
	ctx, entry := e.begin(ctx, op, log.Fields{"id": id})
	err := e.Repo.Projects.Delete(ctx, id)
	finish(entry, op, err, nil)
	return err
}
