package api

import (
	"github.com/dmitrijs2005/gophtasks/internal/auth"
	"github.com/dmitrijs2005/gophtasks/internal/tasks"
)

type Empty struct{}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Session auth.Session `json:"session"`
}

// UserResponse carries the current user; User is nil when nobody is
// logged in.
type UserResponse struct {
	User *auth.User `json:"user,omitempty"`
}

type UpdateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

type FilterTasksRequest struct {
	Filter tasks.Filter `json:"filter"`
}

type TasksResponse struct {
	Tasks []tasks.Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Input tasks.Input `json:"input"`
}

type UpdateTaskRequest struct {
	ID    string      `json:"id"`
	Patch tasks.Patch `json:"patch"`
}

// TaskResponse carries one task; Task is nil when an update found no
// matching id.
type TaskResponse struct {
	Task *tasks.Task `json:"task,omitempty"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

type StatsResponse struct {
	Stats tasks.Stats `json:"stats"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type AddCategoryRequest struct {
	Name string `json:"name"`
}

type ProfileResponse struct {
	Profile tasks.Profile `json:"profile"`
}
