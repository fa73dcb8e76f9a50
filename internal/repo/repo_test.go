package repo_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kanban/internal/db"
	"kanban/internal/domain"
	"kanban/internal/repo"
	"kanban/internal/schema"
	"kanban/internal/store"
)

func newTestRepo(t *testing.T) repo.Repo {
	t.Helper()
	conn, err := db.Open(db.Config{Workspace: t.TempDir()})
	require.NoError(t, err)
	require.NoError(t, schema.Bootstrap(context.Background(), conn))
	t.Cleanup(func() { conn.Close() })
	return repo.New(store.NewSQLiteBackend(conn, "task", "projects"))
}

func taskInput() domain.TaskInput {
	return domain.TaskInput{
		Title:       "Design spec",
		Description: "Write it",
		Status:      "todo",
		StartDate:   domain.MustParseDate("2024-01-01"),
		EndDate:     domain.MustParseDate("2024-01-05"),
		AssignedTo:  "alice",
	}
}

func projectInput() domain.ProjectInput {
	return domain.ProjectInput{
		Name:        "Board",
		Description: "Kanban backend",
		Status:      "active",
		Progress:    10,
		Team:        []string{"alice", "bob"},
		DueDate:     domain.MustParseDate("2024-03-01"),
		Priority:    "medium",
	}
}

func TestTaskLifecycle(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	created, err := r.Tasks.Create(ctx, taskInput())
	require.NoError(t, err)
	assert.Len(t, created.ID, 24)
	assert.Equal(t, taskInput(), created.Input())

	got, err := r.Tasks.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	next := taskInput()
	next.Status = "done"
	next.Description = ""
	updated, err := r.Tasks.Update(ctx, created.ID, next)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, next, updated.Input())

	got, err = r.Tasks.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, r.Tasks.Delete(ctx, created.ID))
	_, err = r.Tasks.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskIdentifiersAreFresh(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	a, err := r.Tasks.Create(ctx, taskInput())
	require.NoError(t, err)
	b, err := r.Tasks.Create(ctx, taskInput())
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)

	all, err := r.Tasks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestListEmpty(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	tasks, err := r.Tasks.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
	projects, err := r.Projects.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestMissingIDsAreNotFound(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	missing := primitive.NewObjectID().Hex()

	_, err := r.Tasks.Get(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.Tasks.Update(ctx, missing, taskInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Tasks.Delete(ctx, missing), domain.ErrNotFound)

	_, err = r.Projects.Get(ctx, missing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = r.Projects.Update(ctx, missing, projectInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, r.Projects.Delete(ctx, missing), domain.ErrNotFound)
}

func TestMalformedIDsAreDistinctFromNotFound(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	for _, id := range []string{"bogus-id", "", "1234"} {
		_, err := r.Tasks.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrInvalidID)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		_, err = r.Projects.Update(ctx, id, projectInput())
		assert.ErrorIs(t, err, domain.ErrInvalidID)
		assert.ErrorIs(t, r.Tasks.Delete(ctx, id), domain.ErrInvalidID)
	}
}

func TestProjectProgressOutOfRangeWritesNothing(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	bad := projectInput()
	bad.Progress = 101
	_, err := r.Projects.Create(ctx, bad)
	assert.True(t, domain.IsValidation(err))
	all, err := r.Projects.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	created, err := r.Projects.Create(ctx, projectInput())
	require.NoError(t, err)
	bad.Progress = -1
	_, err = r.Projects.Update(ctx, created.ID, bad)
	assert.True(t, domain.IsValidation(err))
	got, err := r.Projects.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestProjectUpdateReplacesWholeDocument(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	created, err := r.Projects.Create(ctx, projectInput())
	require.NoError(t, err)

	next := domain.ProjectInput{
		Name:     "Renamed",
		Status:   "paused",
		Progress: 100,
		Team:     []string{},
		DueDate:  domain.MustParseDate("2025-01-31"),
		Priority: "low",
	}
	updated, err := r.Projects.Update(ctx, created.ID, next)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, next, updated.Input())
	assert.Empty(t, updated.Description)
	assert.Empty(t, updated.Team)
}

func TestIdenticalUpdateSucceeds(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	created, err := r.Projects.Create(ctx, projectInput())
	require.NoError(t, err)

	updated, err := r.Projects.Update(ctx, created.ID, projectInput())
	require.NoError(t, err)
	assert.Equal(t, created, updated)
}

func TestConcurrentTaskUpdates(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	shared, err := r.Tasks.Create(ctx, taskInput())
	require.NoError(t, err)
	own := make([]domain.Task, 20)
	for i := range own {
		own[i], err = r.Tasks.Create(ctx, taskInput())
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2*len(own))
	for i := range own {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			in := taskInput()
			in.Status = fmt.Sprintf("shared-%d", i)
			_, err := r.Tasks.Update(ctx, shared.ID, in)
			errs <- err
		}(i)
		go func(i int) {
			defer wg.Done()
			in := taskInput()
			in.Title = fmt.Sprintf("own-%d", i)
			_, err := r.Tasks.Update(ctx, own[i].ID, in)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	for i, task := range own {
		got, err := r.Tasks.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("own-%d", i), got.Title)
	}
}
