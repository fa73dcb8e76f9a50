package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kanban/internal/domain"
)

func sampleTask() domain.TaskInput {
	return domain.TaskInput{
		Title:       "Design spec",
		Description: "Write it",
		Status:      "todo",
		StartDate:   domain.MustParseDate("2024-01-01"),
		EndDate:     domain.MustParseDate("2024-01-05"),
		AssignedTo:  "alice",
	}
}

func sampleProject() domain.ProjectInput {
	return domain.ProjectInput{
		Name:        "Kanban",
		Description: "Board backend",
		Status:      "active",
		Progress:    40,
		Team:        []string{"alice", "bob"},
		DueDate:     domain.MustParseDate("2024-06-30"),
		Priority:    "high",
	}
}

func marshalRaw(t *testing.T, v any) bson.Raw {
	t.Helper()
	data, err := bson.Marshal(v)
	require.NoError(t, err)
	return bson.Raw(data)
}

func TestTaskRoundTrip(t *testing.T) {
	doc, err := TaskToDocument(sampleTask())
	require.NoError(t, err)
	assert.True(t, doc.ID.IsZero(), "mapper must not assign identifiers")
	assert.Equal(t, "2024-01-01", doc.StartDate)
	assert.Equal(t, "2024-01-05", doc.EndDate)

	id := primitive.NewObjectID()
	doc.ID = id
	task, err := TaskFromRaw(marshalRaw(t, doc))
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), task.ID)
	assert.Equal(t, sampleTask(), task.Input())
}

func TestTaskDocumentOmitsZeroID(t *testing.T) {
	doc, err := TaskToDocument(sampleTask())
	require.NoError(t, err)
	raw := marshalRaw(t, doc)
	_, err = raw.LookupErr("_id")
	assert.Error(t, err)
}

func TestTaskValidation(t *testing.T) {
	cases := map[string]func(*domain.TaskInput){
		"title":      func(in *domain.TaskInput) { in.Title = "  " },
		"status":     func(in *domain.TaskInput) { in.Status = "" },
		"start_date": func(in *domain.TaskInput) { in.StartDate = domain.Date{} },
		"end_date":   func(in *domain.TaskInput) { in.EndDate = domain.Date{} },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			in := sampleTask()
			mutate(&in)
			_, err := TaskToDocument(in)
			var ve domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, field, ve.Field)
		})
	}
}

func TestTaskAllowsEndBeforeStart(t *testing.T) {
	in := sampleTask()
	in.StartDate, in.EndDate = in.EndDate, in.StartDate
	_, err := TaskToDocument(in)
	assert.NoError(t, err)
}

func TestTaskAcceptsFirstCalendarDay(t *testing.T) {
	in := sampleTask()
	in.StartDate = domain.MustParseDate("0001-01-01")
	doc, err := TaskToDocument(in)
	require.NoError(t, err)
	assert.Equal(t, "0001-01-01", doc.StartDate)

	doc.ID = primitive.NewObjectID()
	task, err := TaskFromRaw(marshalRaw(t, doc))
	require.NoError(t, err)
	assert.Equal(t, in, task.Input())
}

func TestTaskFromRawMissingField(t *testing.T) {
	raw := marshalRaw(t, bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "title", Value: "no dates"},
		{Key: "description", Value: ""},
		{Key: "status", Value: "todo"},
		{Key: "assigned_to", Value: "alice"},
	})
	_, err := TaskFromRaw(raw)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Contains(t, err.Error(), "start_date")
}

func TestTaskFromRawWrongIDType(t *testing.T) {
	doc, err := TaskToDocument(sampleTask())
	require.NoError(t, err)
	raw := marshalRaw(t, bson.M{
		"_id": "not-an-object-id", "title": doc.Title, "description": doc.Description,
		"status": doc.Status, "start_date": doc.StartDate, "end_date": doc.EndDate, "assigned_to": doc.AssignedTo,
	})
	_, err = TaskFromRaw(raw)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestProjectRoundTrip(t *testing.T) {
	doc, err := ProjectToDocument(sampleProject())
	require.NoError(t, err)
	assert.Equal(t, "2024-06-30", doc.DueDate)

	id := primitive.NewObjectID()
	doc.ID = id
	p, err := ProjectFromRaw(marshalRaw(t, doc))
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), p.ID)
	assert.Equal(t, sampleProject(), p.Input())
}

func TestProjectProgressBounds(t *testing.T) {
	for _, progress := range []int{0, 100} {
		in := sampleProject()
		in.Progress = progress
		_, err := ProjectToDocument(in)
		assert.NoError(t, err, "progress %d", progress)
	}
	for _, progress := range []int{-1, 101, 1000} {
		in := sampleProject()
		in.Progress = progress
		_, err := ProjectToDocument(in)
		var ve domain.ValidationError
		require.ErrorAs(t, err, &ve, "progress %d", progress)
		assert.Equal(t, "progress", ve.Field)
	}
}

func TestProjectNilTeamStoredEmpty(t *testing.T) {
	in := sampleProject()
	in.Team = nil
	doc, err := ProjectToDocument(in)
	require.NoError(t, err)
	doc.ID = primitive.NewObjectID()
	p, err := ProjectFromRaw(marshalRaw(t, doc))
	require.NoError(t, err)
	assert.NotNil(t, p.Team)
	assert.Empty(t, p.Team)
}

func TestProjectProgressNumericWidths(t *testing.T) {
	base := bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "name", Value: "n"},
		{Key: "description", Value: "d"},
		{Key: "status", Value: "s"},
		{Key: "team", Value: bson.A{"x"}},
		{Key: "dueDate", Value: "2024-02-29"},
		{Key: "priority", Value: "low"},
	}
	for _, v := range []any{int32(7), int64(7), float64(7)} {
		doc := append(bson.D{{Key: "progress", Value: v}}, base...)
		p, err := ProjectFromRaw(marshalRaw(t, doc))
		require.NoError(t, err)
		assert.Equal(t, 7, p.Progress)
	}
	doc := append(bson.D{{Key: "progress", Value: 7.5}}, base...)
	_, err := ProjectFromRaw(marshalRaw(t, doc))
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestProjectFromRawBadTeamMember(t *testing.T) {
	raw := marshalRaw(t, bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "name", Value: "n"},
		{Key: "description", Value: "d"},
		{Key: "status", Value: "s"},
		{Key: "progress", Value: 1},
		{Key: "team", Value: bson.A{"x", 3}},
		{Key: "dueDate", Value: "2024-02-29"},
		{Key: "priority", Value: "low"},
	})
	_, err := ProjectFromRaw(raw)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Contains(t, err.Error(), "team")
}
