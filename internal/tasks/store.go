package tasks

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/idgen"
	"github.com/dmitrijs2005/gophtasks/internal/kv"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
)

// DefaultCategories seed the category set on first access.
var DefaultCategories = []string{"Work", "Personal", "Study", "Health", "Finance"}

// Store reads the whole task collection, changes it in memory and writes it
// back on every mutating call. Concurrent writers race; the last one wins.
type Store struct {
	kv  kv.Storage
	log logging.Logger
	now func() time.Time
	ids idgen.Generator
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option { return func(s *Store) { s.log = l } }

func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

func WithIDGenerator(g idgen.Generator) Option { return func(s *Store) { s.ids = g } }

func NewStore(storage kv.Storage, opts ...Option) *Store {
	s := &Store{
		kv:  storage,
		log: logging.Nop(),
		now: time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.ids == nil {
		s.ids = idgen.NewTimestamp(s.now)
	}
	return s
}

func (s *Store) load(ctx context.Context) ([]Task, error) {
	var list []Task
	if _, err := kv.GetJSON(ctx, s.kv, common.TasksKey, &list); err != nil {
		s.log.Error(ctx, "load tasks failed", "error", err)
		return nil, err
	}
	return list, nil
}

func (s *Store) save(ctx context.Context, list []Task) error {
	if list == nil {
		list = []Task{}
	}
	if err := kv.SetJSON(ctx, s.kv, common.TasksKey, list); err != nil {
		s.log.Error(ctx, "save tasks failed", "error", err)
		return err
	}
	return nil
}

// ListByUser returns the tasks owned by userID in insertion order.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Task, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Task, 0, len(list))
	for _, t := range list {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create appends a new task owned by userID. The owner is not checked
// against the user list.
func (s *Store) Create(ctx context.Context, in Input, userID string) (*Task, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := FormatTimestamp(s.now())
	t := Task{
		ID:          s.ids.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Category:    in.Category,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
		UserID:      userID,
	}

	if err := s.save(ctx, append(list, t)); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "task created", "task_id", t.ID, "user_id", userID)
	return &t, nil
}

// Update merges p into the task with id and refreshes UpdatedAt. It returns
// (nil, nil) when no such task exists. ID, UserID and CreatedAt never change.
func (s *Store) Update(ctx context.Context, id string, p Patch) (*Task, error) {
	list, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(list, func(t Task) bool { return t.ID == id })
	if idx < 0 {
		return nil, nil
	}

	t := list[idx]
	if err := p.apply(&t); err != nil {
		return nil, err
	}
	t.UpdatedAt = FormatTimestamp(s.now())
	list[idx] = t

	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "task updated", "task_id", id)
	return &t, nil
}

// Delete removes the task with id and reports whether it existed. Nothing
// is written when it did not.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	list, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	kept := slices.DeleteFunc(slices.Clone(list), func(t Task) bool { return t.ID == id })
	if len(kept) == len(list) {
		return false, nil
	}

	if err := s.save(ctx, kept); err != nil {
		return false, err
	}
	s.log.Info(ctx, "task deleted", "task_id", id)
	return true, nil
}

// Stats summarises userID's tasks as of now.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	list, err := s.ListByUser(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(list, s.now()), nil
}

// Categories returns the category set, persisting the defaults the first
// time it is read.
func (s *Store) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	ok, err := kv.GetJSON(ctx, s.kv, common.CategoriesKey, &cats)
	if err != nil {
		s.log.Error(ctx, "load categories failed", "error", err)
		return nil, err
	}
	if ok {
		return cats, nil
	}

	cats = slices.Clone(DefaultCategories)
	if err := kv.SetJSON(ctx, s.kv, common.CategoriesKey, cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// AddCategory appends name unless it is already present (case-sensitive)
// and returns the resulting set.
func (s *Store) AddCategory(ctx context.Context, name string) ([]string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyCategory
	}

	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if slices.Contains(cats, name) {
		return cats, nil
	}

	cats = append(cats, name)
	if err := kv.SetJSON(ctx, s.kv, common.CategoriesKey, cats); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "category added", "category", name)
	return cats, nil
}
