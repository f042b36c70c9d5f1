package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	assert.Equal(t, StatusInProgress, NextStatus(StatusTodo))
	assert.Equal(t, StatusCompleted, NextStatus(StatusInProgress))
	assert.Equal(t, StatusTodo, NextStatus(StatusCompleted))
	assert.Equal(t, StatusTodo, NextStatus("bogus"))
	assert.Equal(t, "in progress", StatusInProgress.Label())
}

func TestParseDueDate(t *testing.T) {
	d, err := ParseDueDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDueDate("2025-03-10T12:30:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, 12, d.Hour())

	d, err = ParseDueDate("2025-03-10T12:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, 10, d.UTC().Hour())

	_, err = ParseDueDate("10/03/2025")
	assert.ErrorIs(t, err, ErrInvalidDueDate)
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{Status: StatusTodo}, false},
		{"past, open", Task{Status: StatusTodo, DueDate: "2025-03-09"}, true},
		{"past, in progress", Task{Status: StatusInProgress, DueDate: "2025-03-10T08:59:59Z"}, true},
		{"past, completed", Task{Status: StatusCompleted, DueDate: "2025-03-09"}, false},
		{"exactly now", Task{Status: StatusTodo, DueDate: "2025-03-10T09:00:00Z"}, false},
		{"future", Task{Status: StatusTodo, DueDate: "2025-03-11"}, false},
		{"date-only today counts from midnight", Task{Status: StatusTodo, DueDate: "2025-03-10"}, true},
		{"unparseable", Task{Status: StatusTodo, DueDate: "soon"}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.task.IsOverdue(now))
		})
	}
}
