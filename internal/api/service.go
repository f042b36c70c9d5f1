package api

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "gophtasks.v1.TaskManager"

// TaskManagerServer is implemented by the server handler. Task methods act
// on the user of the current session.
type TaskManagerServer interface {
	Register(context.Context, *RegisterRequest) (*SessionResponse, error)
	Login(context.Context, *LoginRequest) (*SessionResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	CurrentUser(context.Context, *Empty) (*UserResponse, error)
	UpdateAvatar(context.Context, *UpdateAvatarRequest) (*UserResponse, error)
	ListTasks(context.Context, *Empty) (*TasksResponse, error)
	FilterTasks(context.Context, *FilterTasksRequest) (*TasksResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*TaskResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*TaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error)
	Stats(context.Context, *Empty) (*StatsResponse, error)
	Categories(context.Context, *Empty) (*CategoriesResponse, error)
	AddCategory(context.Context, *AddCategoryRequest) (*CategoriesResponse, error)
	SeedSampleData(context.Context, *Empty) (*TasksResponse, error)
	Profile(context.Context, *Empty) (*ProfileResponse, error)
}

// FullMethod returns "/<service>/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unary builds the method descriptor for one unary call.
func unary[Req, Resp any](name string, call func(TaskManagerServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TaskManagerServer), ctx, req.(*Req))
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes TaskManager for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskManagerServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", TaskManagerServer.Register),
		unary("Login", TaskManagerServer.Login),
		unary("Logout", TaskManagerServer.Logout),
		unary("CurrentUser", TaskManagerServer.CurrentUser),
		unary("UpdateAvatar", TaskManagerServer.UpdateAvatar),
		unary("ListTasks", TaskManagerServer.ListTasks),
		unary("FilterTasks", TaskManagerServer.FilterTasks),
		unary("CreateTask", TaskManagerServer.CreateTask),
		unary("UpdateTask", TaskManagerServer.UpdateTask),
		unary("DeleteTask", TaskManagerServer.DeleteTask),
		unary("Stats", TaskManagerServer.Stats),
		unary("Categories", TaskManagerServer.Categories),
		unary("AddCategory", TaskManagerServer.AddCategory),
		unary("SeedSampleData", TaskManagerServer.SeedSampleData),
		unary("Profile", TaskManagerServer.Profile),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophtasks/v1/taskmanager",
}

func RegisterTaskManagerServer(s grpc.ServiceRegistrar, srv TaskManagerServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// TaskManagerClient is the client stub for TaskManager.
type TaskManagerClient struct {
	cc grpc.ClientConnInterface
}

func NewTaskManagerClient(cc grpc.ClientConnInterface) *TaskManagerClient {
	return &TaskManagerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *TaskManagerClient, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{CallOption()}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskManagerClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c, "Register", in, opts)
}

func (c *TaskManagerClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c, "Login", in, opts)
}

func (c *TaskManagerClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, "Logout", in, opts)
}

func (c *TaskManagerClient) CurrentUser(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, "CurrentUser", in, opts)
}

func (c *TaskManagerClient) UpdateAvatar(ctx context.Context, in *UpdateAvatarRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, "UpdateAvatar", in, opts)
}

func (c *TaskManagerClient) ListTasks(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TasksResponse, error) {
	return invoke[TasksResponse](ctx, c, "ListTasks", in, opts)
}

func (c *TaskManagerClient) FilterTasks(ctx context.Context, in *FilterTasksRequest, opts ...grpc.CallOption) (*TasksResponse, error) {
	return invoke[TasksResponse](ctx, c, "FilterTasks", in, opts)
}

func (c *TaskManagerClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	return invoke[TaskResponse](ctx, c, "CreateTask", in, opts)
}

func (c *TaskManagerClient) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*TaskResponse, error) {
	return invoke[TaskResponse](ctx, c, "UpdateTask", in, opts)
}

func (c *TaskManagerClient) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error) {
	return invoke[DeleteTaskResponse](ctx, c, "DeleteTask", in, opts)
}

func (c *TaskManagerClient) Stats(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*StatsResponse, error) {
	return invoke[StatsResponse](ctx, c, "Stats", in, opts)
}

func (c *TaskManagerClient) Categories(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*CategoriesResponse, error) {
	return invoke[CategoriesResponse](ctx, c, "Categories", in, opts)
}

func (c *TaskManagerClient) AddCategory(ctx context.Context, in *AddCategoryRequest, opts ...grpc.CallOption) (*CategoriesResponse, error) {
	return invoke[CategoriesResponse](ctx, c, "AddCategory", in, opts)
}

func (c *TaskManagerClient) SeedSampleData(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TasksResponse, error) {
	return invoke[TasksResponse](ctx, c, "SeedSampleData", in, opts)
}

func (c *TaskManagerClient) Profile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c, "Profile", in, opts)
}
