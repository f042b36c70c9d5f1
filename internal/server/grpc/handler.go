package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/api"
	"github.com/dmitrijs2005/gophtasks/internal/auth"
	"github.com/dmitrijs2005/gophtasks/internal/tasks"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// fail converts err to a status error, logging it when the caller will only
// see "internal error".
func (s *GRPCServer) fail(ctx context.Context, op string, err error) error {
	st := api.ToStatus(err)
	if status.Code(st) == codes.Internal {
		s.logger.Error(ctx, op+" failed", "error", err)
	}
	return st
}

// session returns the current user together with the task store of the
// request namespace.
func (s *GRPCServer) session(ctx context.Context) (*auth.User, *tasks.Store, error) {
	users, ts := s.stores(ctx)
	u, err := users.RequireUser(ctx)
	if err != nil {
		return nil, nil, err
	}
	return u, ts, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.SessionResponse, error) {
	users, _ := s.stores(ctx)

	sess, err := users.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		return nil, s.fail(ctx, "register", err)
	}

	return &api.SessionResponse{Session: *sess}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.SessionResponse, error) {
	users, _ := s.stores(ctx)

	sess, err := users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.fail(ctx, "login", err)
	}

	return &api.SessionResponse{Session: *sess}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, _ *api.Empty) (*api.Empty, error) {
	users, _ := s.stores(ctx)

	if err := users.Logout(ctx); err != nil {
		return nil, s.fail(ctx, "logout", err)
	}

	return &api.Empty{}, nil
}

func (s *GRPCServer) CurrentUser(ctx context.Context, _ *api.Empty) (*api.UserResponse, error) {
	users, _ := s.stores(ctx)

	u, err := users.CurrentUser(ctx)
	if err != nil {
		return nil, s.fail(ctx, "current user", err)
	}

	return &api.UserResponse{User: u}, nil
}

func (s *GRPCServer) UpdateAvatar(ctx context.Context, req *api.UpdateAvatarRequest) (*api.UserResponse, error) {
	users, _ := s.stores(ctx)

	u, err := users.RequireUser(ctx)
	if err != nil {
		return nil, s.fail(ctx, "update avatar", err)
	}

	u, err = users.UpdateAvatar(ctx, u.ID, req.Avatar)
	if err != nil {
		return nil, s.fail(ctx, "update avatar", err)
	}

	return &api.UserResponse{User: u}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, _ *api.Empty) (*api.TasksResponse, error) {
	u, ts, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(ctx, "list tasks", err)
	}

	list, err := ts.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, s.fail(ctx, "list tasks", err)
	}

	return &api.TasksResponse{Tasks: list}, nil
}

func (s *GRPCServer) FilterTasks(ctx context.Context, req *api.FilterTasksRequest) (*api.TasksResponse, error) {
	u, ts, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(ctx, "filter tasks", err)
	}

	list, err := ts.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, s.fail(ctx, "filter tasks", err)
	}

	return &api.TasksResponse{Tasks: req.Filter.Apply(list)}, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *api.CreateTaskRequest) (*api.TaskResponse, error) {
	u, ts, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(ctx, "create task", err)
	}

	t, err := ts.Create(ctx, req.Input, u.ID)
	if err != nil {
		return nil, s.fail(ctx, "create task", err)
	}

	return &api.TaskResponse{Task: t}, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *api.UpdateTaskRequest) (*api.TaskResponse, error) {
	_, ts, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(ctx, "update task", err)
	}

	t, err := ts.Update(ctx, req.ID, req.Patch)
	if err != nil {
		return nil, s.fail(ctx, "update task", err)
	}

	return &api.TaskResponse{Task: t}, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *api.DeleteTaskRequest) (*api.DeleteTaskResponse, error) {
	_, ts, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(ctx, "delete task", err)
	}

	deleted, err := ts.Delete(ctx, req.ID)
	if err != nil {
		return nil, s.fail(ctx, "delete task", err)
	}

	return &api.DeleteTaskResponse{Deleted: deleted}, nil
}

func (s *GRPCServer) Stats(ctx context.Context, _ *api.Empty) (*api.StatsResponse, error) {
	u, ts, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(ctx, "stats", err)
	}

	st, err := ts.Stats(ctx, u.ID)
	if err != nil {
		return nil, s.fail(ctx, "stats", err)
	}

	return &api.StatsResponse{Stats: st}, nil
}

// Categories is readable without a session; the set is shared by all
// users of a namespace.
func (s *GRPCServer) Categories(ctx context.Context, _ *api.Empty) (*api.CategoriesResponse, error) {
	_, ts := s.stores(ctx)

	cats, err := ts.Categories(ctx)
	if err != nil {
		return nil, s.fail(ctx, "categories", err)
	}

	return &api.CategoriesResponse{Categories: cats}, nil
}

func (s *GRPCServer) AddCategory(ctx context.Context, req *api.AddCategoryRequest) (*api.CategoriesResponse, error) {
	_, ts, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(ctx, "add category", err)
	}

	cats, err := ts.AddCategory(ctx, req.Name)
	if err != nil {
		return nil, s.fail(ctx, "add category", err)
	}

	return &api.CategoriesResponse{Categories: cats}, nil
}

func (s *GRPCServer) SeedSampleData(ctx context.Context, _ *api.Empty) (*api.TasksResponse, error) {
	u, ts, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(ctx, "seed", err)
	}

	list, err := ts.SeedSampleData(ctx, u.ID)
	if err != nil {
		return nil, s.fail(ctx, "seed", err)
	}

	return &api.TasksResponse{Tasks: list}, nil
}

func (s *GRPCServer) Profile(ctx context.Context, _ *api.Empty) (*api.ProfileResponse, error) {
	u, ts, err := s.session(ctx)
	if err != nil {
		return nil, s.fail(ctx, "profile", err)
	}

	p, err := ts.Profile(ctx, u.ID)
	if err != nil {
		return nil, s.fail(ctx, "profile", err)
	}

	return &api.ProfileResponse{Profile: p}, nil
}
