package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/kv"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*Store, *kv.Memory, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: t0}
	mem := kv.NewMemory()
	return NewStore(mem, WithClock(clock.Now)), mem, clock
}

func ptr[T any](v T) *T { return &v }

func TestCreate_AssignsFieldsAndPersists(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	got, err := s.Create(ctx, Input{Title: "Write report", Category: "Work"}, "u1")
	require.NoError(t, err)

	want := &Task{
		ID:        "1741597200000",
		Title:     "Write report",
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		Category:  "Work",
		CreatedAt: "2025-03-10T09:00:00.000Z",
		UpdatedAt: "2025-03-10T09:00:00.000Z",
		UserID:    "u1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("task mismatch (-want +got):\n%s", diff)
	}

	raw, err := mem.Get(ctx, common.TasksKey)
	require.NoError(t, err)
	var stored []map[string]any
	require.NoError(t, json.Unmarshal(raw, &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "u1", stored[0]["userId"])
	assert.Equal(t, "2025-03-10T09:00:00.000Z", stored[0]["createdAt"])
	assert.Equal(t, "", stored[0]["description"])
	assert.NotContains(t, stored[0], "dueDate")
}

func TestCreate_Validation(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	cases := []struct {
		in   Input
		want error
	}{
		{Input{Title: ""}, ErrEmptyTitle},
		{Input{Title: "   "}, ErrEmptyTitle},
		{Input{Title: "x", Status: "done"}, ErrInvalidStatus},
		{Input{Title: "x", Priority: "urgent"}, ErrInvalidPriority},
		{Input{Title: "x", DueDate: "tomorrow"}, ErrInvalidDueDate},
	}
	for _, c := range cases {
		_, err := s.Create(ctx, c.in, "u1")
		assert.ErrorIs(t, err, c.want)
	}

	v, _ := mem.Get(ctx, common.TasksKey)
	assert.Nil(t, v, "rejected input writes nothing")
}

func TestListByUser_ScopedAndOrdered(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	empty, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, c := range []struct{ title, user string }{{"a", "u1"}, {"b", "u2"}, {"c", "u1"}} {
		_, err := s.Create(ctx, Input{Title: c.title}, c.user)
		require.NoError(t, err)
	}

	list, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].Title)
	assert.Equal(t, "c", list[1].Title)
}

func TestUpdate_StatusOnlyTouchesStatusAndUpdatedAt(t *testing.T) {
	s, _, clock := newTestStore(t)
	ctx := context.Background()

	orig, err := s.Create(ctx, Input{Title: "t", Description: "d", Category: "Work", DueDate: "2025-04-01"}, "u1")
	require.NoError(t, err)

	clock.Advance(time.Hour)
	got, err := s.Update(ctx, orig.ID, Patch{Status: ptr(StatusCompleted)})
	require.NoError(t, err)

	want := *orig
	want.Status = StatusCompleted
	want.UpdatedAt = "2025-03-10T10:00:00.000Z"
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Fatalf("update mismatch (-want +got):\n%s", diff)
	}

	list, _ := s.ListByUser(ctx, "u1")
	assert.Equal(t, want, list[0])
}

// storedTasks is a collection as written by the browser client: empty
// description kept, millisecond ISO timestamps.
const storedTasks = `[` +
	`{"id":"1","title":"Write report","description":"","status":"todo","priority":"medium","category":"Work","createdAt":"2024-01-01T10:00:00.000Z","updatedAt":"2024-01-01T10:00:00.000Z","userId":"1"},` +
	`{"id":"2","title":"Gym","description":"legs","status":"in_progress","priority":"low","category":"Health","dueDate":"2024-01-05","createdAt":"2024-01-02T08:30:15.250Z","updatedAt":"2024-01-02T08:30:15.250Z","userId":"1"}` +
	`]`

func TestUpdate_UntouchedFieldsKeepStoredBytes(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, common.TasksKey, []byte(storedTasks)))

	_, err := s.Update(ctx, "1", Patch{Status: ptr(StatusCompleted)})
	require.NoError(t, err)

	raw, err := mem.Get(ctx, common.TasksKey)
	require.NoError(t, err)

	var before, after []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(storedTasks), &before))
	require.NoError(t, json.Unmarshal(raw, &after))
	require.Len(t, after, 2)

	for key, v := range before[0] {
		switch key {
		case "status":
			assert.Equal(t, `"completed"`, string(after[0][key]))
		case "updatedAt":
			assert.Equal(t, `"2025-03-10T09:00:00.000Z"`, string(after[0][key]))
		default:
			assert.Equal(t, string(v), string(after[0][key]), key)
		}
	}
	assert.Len(t, after[0], len(before[0]))
	assert.Equal(t, before[1], after[1], "other tasks are rewritten unchanged")
}

func TestUpdate_MergeAndClear(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	orig, err := s.Create(ctx, Input{Title: "t", Description: "d", DueDate: "2025-04-01"}, "u1")
	require.NoError(t, err)

	got, err := s.Update(ctx, orig.ID, Patch{
		Title:            ptr("renamed"),
		Priority:         ptr(PriorityHigh),
		Category:         ptr("Health"),
		ClearDescription: true,
		ClearDueDate:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, PriorityHigh, got.Priority)
	assert.Equal(t, "Health", got.Category)
	assert.Empty(t, got.Description)
	assert.Empty(t, got.DueDate)
	assert.Equal(t, orig.ID, got.ID)
	assert.Equal(t, orig.UserID, got.UserID)
	assert.Equal(t, orig.CreatedAt, got.CreatedAt)

	_, err = s.Update(ctx, orig.ID, Patch{Title: ptr("")})
	assert.ErrorIs(t, err, ErrEmptyTitle)
	_, err = s.Update(ctx, orig.ID, Patch{Status: ptr(Status("archived"))})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdate_AbsentIsNil(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, Input{Title: "t"}, "u1")
	require.NoError(t, err)
	before, _ := mem.Get(ctx, common.TasksKey)

	got, err := s.Update(ctx, "missing", Patch{Title: ptr("x")})
	require.NoError(t, err)
	assert.Nil(t, got)

	after, _ := mem.Get(ctx, common.TasksKey)
	assert.Equal(t, before, after)
}

func TestDelete(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, Input{Title: "a"}, "u1")
	_, _ = s.Create(ctx, Input{Title: "b"}, "u1")
	before, _ := mem.Get(ctx, common.TasksKey)

	ok, err := s.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	after, _ := mem.Get(ctx, common.TasksKey)
	assert.Equal(t, before, after, "absent id leaves storage unchanged")

	ok, err = s.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	list, _ := s.ListByUser(ctx, "u1")
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Title)
}

func TestStats(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	st, err := s.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Stats{}, st)

	yesterday := t0.Add(-24 * time.Hour).Format(time.RFC3339)
	inputs := []Input{
		{Title: "done 1", Status: StatusCompleted, DueDate: yesterday},
		{Title: "done 2", Status: StatusCompleted},
		{Title: "late", Status: StatusInProgress, DueDate: yesterday},
		{Title: "fine", Status: StatusTodo, DueDate: "2099-01-01"},
	}
	for _, in := range inputs {
		_, err := s.Create(ctx, in, "u1")
		require.NoError(t, err)
	}
	_, err = s.Create(ctx, Input{Title: "other user"}, "u2")
	require.NoError(t, err)

	st, err = s.Stats(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, Stats{Total: 4, Completed: 2, InProgress: 1, Overdue: 1, CompletionRate: 50}, st)
}

func TestCategories(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultCategories, cats)

	raw, _ := mem.Get(ctx, common.CategoriesKey)
	assert.JSONEq(t, `["Work","Personal","Study","Health","Finance"]`, string(raw))

	cats, err = s.AddCategory(ctx, "Hobby")
	require.NoError(t, err)
	assert.Equal(t, "Hobby", cats[len(cats)-1])

	cats, err = s.AddCategory(ctx, "Hobby")
	require.NoError(t, err)
	assert.Len(t, cats, 6, "duplicate is not added")

	cats, err = s.AddCategory(ctx, "work")
	require.NoError(t, err)
	assert.Len(t, cats, 7, "comparison is case-sensitive")

	_, err = s.AddCategory(ctx, " ")
	assert.ErrorIs(t, err, ErrEmptyCategory)

	assert.Equal(t, []string{"Work", "Personal", "Study", "Health", "Finance"}, DefaultCategories, "defaults are not mutated")
}

func TestCategories_StoredEmptyListIsKept(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, common.CategoriesKey, []byte(`[]`)))

	cats, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestSeedSampleData_Idempotent(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.SeedSampleData(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, created, 3)

	assert.Equal(t, "Complete project proposal", created[0].Title)
	assert.Equal(t, StatusInProgress, created[0].Status)
	assert.Equal(t, PriorityHigh, created[0].Priority)
	assert.Equal(t, "2025-03-12T09:00:00.000Z", created[0].DueDate)
	due, ok := created[0].Due()
	require.True(t, ok)
	assert.Equal(t, t0.Add(48*time.Hour), due)

	assert.Equal(t, "Review team performance", created[1].Title)
	due, _ = created[1].Due()
	assert.Equal(t, t0.Add(7*24*time.Hour), due)

	assert.Equal(t, StatusCompleted, created[2].Status)
	assert.Empty(t, created[2].DueDate)

	again, err := s.SeedSampleData(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, again)

	list, _ := s.ListByUser(ctx, "u1")
	assert.Len(t, list, 3)

	other, err := s.SeedSampleData(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, other, 3, "seeding is per user")
}

func TestSeedSampleData_SkipsUserWithTasks(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.Create(ctx, Input{Title: "mine"}, "u1")
	require.NoError(t, err)

	created, err := s.SeedSampleData(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, created)
}

func TestLoad_CorruptCollection(t *testing.T) {
	s, mem, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, common.TasksKey, []byte(`{"not":"a list"}`)))

	_, err := s.ListByUser(ctx, "u1")
	var de *kv.DecodeError
	assert.ErrorAs(t, err, &de)
}
