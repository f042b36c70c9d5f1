// Package services contains the application services of the task manager
// client. Backend is what the CLI talks to; it is served either by the
// local stores (see NewLocalBackend) or by the gRPC client.
package services

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/auth"
	"github.com/dmitrijs2005/gophtasks/internal/tasks"
)

// Backend defines the operations the CLI needs.
//
// Contract:
//   - Register/Login/Logout manage the single current session.
//   - CurrentUser returns nil (no error) when nobody is logged in.
//   - Task operations act on the current user and fail with
//     auth.ErrNotAuthenticated without a session.
//   - UpdateTask returns nil for an unknown id; DeleteTask reports whether
//     anything was removed.
//
// All methods must honor context cancellation/timeouts.
type Backend interface {
	Register(ctx context.Context, email, password, name string) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*auth.User, error)
	UpdateAvatar(ctx context.Context, avatar string) (*auth.User, error)

	ListTasks(ctx context.Context) ([]tasks.Task, error)
	FilterTasks(ctx context.Context, f tasks.Filter) ([]tasks.Task, error)
	CreateTask(ctx context.Context, in tasks.Input) (*tasks.Task, error)
	UpdateTask(ctx context.Context, id string, p tasks.Patch) (*tasks.Task, error)
	DeleteTask(ctx context.Context, id string) (bool, error)
	Stats(ctx context.Context) (tasks.Stats, error)
	Categories(ctx context.Context) ([]string, error)
	AddCategory(ctx context.Context, name string) ([]string, error)
	SeedSampleData(ctx context.Context) ([]tasks.Task, error)
	Profile(ctx context.Context) (tasks.Profile, error)

	Close() error
}

// localBackend is the Backend over in-process stores.
type localBackend struct {
	users   *auth.Store
	tasks   *tasks.Store
	closeFn func() error
}

// NewLocalBackend binds the stores; closeFn (may be nil) releases the
// storage they share.
func NewLocalBackend(users *auth.Store, ts *tasks.Store, closeFn func() error) Backend {
	return &localBackend{users: users, tasks: ts, closeFn: closeFn}
}

func (b *localBackend) Register(ctx context.Context, email, password, name string) (*auth.Session, error) {
	return b.users.Register(ctx, email, password, name)
}

func (b *localBackend) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	return b.users.Login(ctx, email, password)
}

func (b *localBackend) Logout(ctx context.Context) error {
	return b.users.Logout(ctx)
}

func (b *localBackend) CurrentUser(ctx context.Context) (*auth.User, error) {
	return b.users.CurrentUser(ctx)
}

func (b *localBackend) UpdateAvatar(ctx context.Context, avatar string) (*auth.User, error) {
	u, err := b.users.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return b.users.UpdateAvatar(ctx, u.ID, avatar)
}

func (b *localBackend) ListTasks(ctx context.Context) ([]tasks.Task, error) {
	u, err := b.users.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return b.tasks.ListByUser(ctx, u.ID)
}

func (b *localBackend) FilterTasks(ctx context.Context, f tasks.Filter) ([]tasks.Task, error) {
	list, err := b.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(list), nil
}

func (b *localBackend) CreateTask(ctx context.Context, in tasks.Input) (*tasks.Task, error) {
	u, err := b.users.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return b.tasks.Create(ctx, in, u.ID)
}

func (b *localBackend) UpdateTask(ctx context.Context, id string, p tasks.Patch) (*tasks.Task, error) {
	if _, err := b.users.RequireUser(ctx); err != nil {
		return nil, err
	}
	return b.tasks.Update(ctx, id, p)
}

func (b *localBackend) DeleteTask(ctx context.Context, id string) (bool, error) {
	if _, err := b.users.RequireUser(ctx); err != nil {
		return false, err
	}
	return b.tasks.Delete(ctx, id)
}

func (b *localBackend) Stats(ctx context.Context) (tasks.Stats, error) {
	u, err := b.users.RequireUser(ctx)
	if err != nil {
		return tasks.Stats{}, err
	}
	return b.tasks.Stats(ctx, u.ID)
}

func (b *localBackend) Categories(ctx context.Context) ([]string, error) {
	return b.tasks.Categories(ctx)
}

func (b *localBackend) AddCategory(ctx context.Context, name string) ([]string, error) {
	if _, err := b.users.RequireUser(ctx); err != nil {
		return nil, err
	}
	return b.tasks.AddCategory(ctx, name)
}

func (b *localBackend) SeedSampleData(ctx context.Context) ([]tasks.Task, error) {
	u, err := b.users.RequireUser(ctx)
	if err != nil {
		return nil, err
	}
	return b.tasks.SeedSampleData(ctx, u.ID)
}

func (b *localBackend) Profile(ctx context.Context) (tasks.Profile, error) {
	u, err := b.users.RequireUser(ctx)
	if err != nil {
		return tasks.Profile{}, err
	}
	return b.tasks.Profile(ctx, u.ID)
}

func (b *localBackend) Close() error {
	if b.closeFn == nil {
		return nil
	}
	return b.closeFn()
}
