// Package tasks is the task store: per-user task lists, the global category
// set and the statistics derived from them.
package tasks

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrEmptyTitle      = errors.New("task title must not be empty")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidDueDate  = errors.New("invalid due date")
	ErrEmptyCategory   = errors.New("category name must not be empty")
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label is the status for display: "in progress" rather than "in_progress".
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// NextStatus cycles todo -> in_progress -> completed -> todo.
func NextStatus(s Status) Status {
	switch s {
	case StatusTodo:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusTodo
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TimestampLayout is the stored form of createdAt and updatedAt: UTC with
// millisecond precision, e.g. 2025-03-10T09:00:00.000Z.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Task is one persisted task. JSON field names match the stored layout.
// Timestamps are kept as stored text so rewriting the collection leaves
// untouched tasks byte-identical.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	DueDate     string   `json:"dueDate,omitempty"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
	UserID      string   `json:"userId"`
}

// Due parses DueDate. ok is false when there is no due date or it cannot be
// parsed.
func (t Task) Due() (due time.Time, ok bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := ParseDueDate(t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsOverdue reports whether t is unfinished and its due date is before now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	due, ok := t.Due()
	return ok && due.Before(now)
}

// ParseDueDate accepts a calendar date (YYYY-MM-DD, midnight UTC) or an
// RFC 3339 timestamp.
func ParseDueDate(s string) (time.Time, error) {
	if d, err := time.Parse(time.DateOnly, s); err == nil {
		return d, nil
	}
	d, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
	}
	return d, nil
}

// Input carries the caller-supplied fields of a new task. Empty Status and
// Priority default to todo and medium.
type Input struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Category    string   `json:"category"`
	DueDate     string   `json:"dueDate,omitempty"`
}

func (in *Input) normalize() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrEmptyTitle
	}
	if in.Status == "" {
		in.Status = StatusTodo
	}
	if in.Priority == "" {
		in.Priority = PriorityMedium
	}
	return validate(in.Status, in.Priority, in.DueDate)
}

func validate(s Status, p Priority, due string) error {
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, p)
	}
	if due != "" {
		if _, err := ParseDueDate(due); err != nil {
			return err
		}
	}
	return nil
}

// Patch is a partial update. Nil fields are left alone; the Clear flags
// remove the optional fields.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Category    *string   `json:"category,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`

	ClearDescription bool `json:"clearDescription,omitempty"`
	ClearDueDate     bool `json:"clearDueDate,omitempty"`
}

// apply validates the patched fields and merges them into t.
func (p Patch) apply(t *Task) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
	}
	if p.DueDate != nil && *p.DueDate != "" {
		if _, err := ParseDueDate(*p.DueDate); err != nil {
			return err
		}
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ClearDescription {
		t.Description = ""
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.ClearDueDate {
		t.DueDate = ""
	}
	return nil
}
