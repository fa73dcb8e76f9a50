package engine_test

import (
	"context"
	"errors"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban/internal/db"
	"kanban/internal/domain"
	"kanban/internal/engine"
	"kanban/internal/schema"
	"kanban/internal/store"
)

type testEnv struct {
	Engine engine.Engine
	Hook   *test.Hook
	Ctx    context.Context
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, schema.Bootstrap(context.Background(), conn))
	t.Cleanup(func() { conn.Close() })
	logger, hook := test.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	eng := engine.New(store.NewSQLiteBackend(conn, "task", "projects"), logger)
	return testEnv{Engine: eng, Hook: hook, Ctx: context.Background()}
}

func messages(hook *test.Hook) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		out = append(out, e.Message)
	}
	return out
}

func sampleTask() domain.TaskInput {
	return domain.TaskInput{
		Title:      "Ship",
		Status:     "todo",
		StartDate:  domain.MustParseDate("2024-01-01"),
		EndDate:    domain.MustParseDate("2024-01-02"),
		AssignedTo: "bob",
	}
}

func TestOperationsLogReceiptAndOutcome(t *testing.T) {
	env := newTestEnv(t)
	task, err := env.Engine.CreateTask(env.Ctx, sampleTask())
	require.NoError(t, err)
	assert.Equal(t, []string{"task.create.received", "task.create.succeeded"}, messages(env.Hook))
	last := env.Hook.LastEntry()
	assert.Equal(t, task.ID, last.Data["id"])
	assert.Equal(t, "task.create", last.Data["op"])

	env.Hook.Reset()
	_, err = env.Engine.GetTask(env.Ctx, "bogus-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	assert.Equal(t, []string{"task.get.received", "task.get.failed"}, messages(env.Hook))
	assert.Equal(t, log.WarnLevel, env.Hook.LastEntry().Level)
}

func TestStorageFailureLogsAtErrorLevel(t *testing.T) {
	env := newTestEnv(t)
	env.Engine.Repo.Projects.Coll = failingCollection{err: errors.New("disk full")}
	_, err := env.Engine.ListProjects(env.Ctx)
	require.Error(t, err)
	assert.Equal(t, log.ErrorLevel, env.Hook.LastEntry().Level)
	assert.Equal(t, "project.list.failed", env.Hook.LastEntry().Message)
}

func TestCancelledCallerStillCompletesWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx, cancel := context.WithCancel(env.Ctx)
	cancel()
	p, err := env.Engine.CreateProject(ctx, domain.ProjectInput{
		Name:     "Detached",
		Status:   "active",
		Progress: 5,
		DueDate:  domain.MustParseDate("2024-05-01"),
		Priority: "low",
	})
	require.NoError(t, err)
	got, err := env.Engine.GetProject(env.Ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestFullCycleThroughEngine(t *testing.T) {
	env := newTestEnv(t)
	created, err := env.Engine.CreateTask(env.Ctx, sampleTask())
	require.NoError(t, err)

	items, err := env.Engine.ListTasks(env.Ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{created}, items)

	in := sampleTask()
	in.Status = "in-progress"
	updated, err := env.Engine.UpdateTask(env.Ctx, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "in-progress", updated.Status)

	require.NoError(t, env.Engine.DeleteTask(env.Ctx, created.ID))
	assert.ErrorIs(t, env.Engine.DeleteTask(env.Ctx, created.ID), domain.ErrNotFound)

	project, err := env.Engine.CreateProject(env.Ctx, domain.ProjectInput{
		Name: "P", Status: "active", Progress: 50, Team: []string{"a"},
		DueDate: domain.MustParseDate("2024-09-09"), Priority: "high",
	})
	require.NoError(t, err)
	updatedProject, err := env.Engine.UpdateProject(env.Ctx, project.ID, project.Input())
	require.NoError(t, err)
	assert.Equal(t, project, updatedProject)
	require.NoError(t, env.Engine.DeleteProject(env.Ctx, project.ID))
}

type stubHealth struct{ err error }

func (s stubHealth) Ping(context.Context) error { return s.err }

func TestCheckConnection(t *testing.T) {
	env := newTestEnv(t)
	status := env.Engine.CheckConnection(env.Ctx)
	assert.True(t, status.Connected)
	assert.NoError(t, status.Err)

	env.Engine.Health = stubHealth{err: errors.New("connection refused")}
	status = env.Engine.CheckConnection(env.Ctx)
	assert.False(t, status.Connected)
	assert.EqualError(t, status.Err, "connection refused")
}
