package client

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophtasks/internal/api"
	"github.com/dmitrijs2005/gophtasks/internal/auth"
	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/tasks"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	endpointURL string
	namespace   string
	conn        *grpc.ClientConn
	client      *api.TaskManagerClient
	health      healthpb.HealthClient
}

func withNamespace(ctx context.Context, ns string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.NamespaceHeaderName, ns)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) namespaceInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.namespace != "" {
		ctx = withNamespace(ctx, s.namespace)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewTaskManagerClient connects lazily to endpointURL. Extra dial options
// are appended to the defaults (insecure transport, namespace interceptor).
func NewTaskManagerClient(endpointURL, namespace string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, namespace: namespace}
	err := c.InitGRPCClient(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {

	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.namespaceInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = api.NewTaskManagerClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// Ping checks that the server reports the task manager service as serving.
func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: api.ServiceName})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) Register(ctx context.Context, email, password, name string) (*auth.Session, error) {

	resp, err := s.client.Register(ctx, &api.RegisterRequest{Email: email, Password: password, Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &resp.Session, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*auth.Session, error) {

	resp, err := s.client.Login(ctx, &api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	return &resp.Session, nil
}

func (s *GRPCClient) Logout(ctx context.Context) error {
	_, err := s.client.Logout(ctx, &api.Empty{})
	return s.mapError(err)
}

func (s *GRPCClient) CurrentUser(ctx context.Context) (*auth.User, error) {
	resp, err := s.client.CurrentUser(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.User, nil
}

func (s *GRPCClient) UpdateAvatar(ctx context.Context, avatar string) (*auth.User, error) {
	resp, err := s.client.UpdateAvatar(ctx, &api.UpdateAvatarRequest{Avatar: avatar})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.User, nil
}

func (s *GRPCClient) ListTasks(ctx context.Context) ([]tasks.Task, error) {
	resp, err := s.client.ListTasks(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) FilterTasks(ctx context.Context, f tasks.Filter) ([]tasks.Task, error) {
	resp, err := s.client.FilterTasks(ctx, &api.FilterTasksRequest{Filter: f})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) CreateTask(ctx context.Context, in tasks.Input) (*tasks.Task, error) {
	resp, err := s.client.CreateTask(ctx, &api.CreateTaskRequest{Input: in})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, id string, p tasks.Patch) (*tasks.Task, error) {
	resp, err := s.client.UpdateTask(ctx, &api.UpdateTaskRequest{ID: id, Patch: p})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Task, nil
}

func (s *GRPCClient) DeleteTask(ctx context.Context, id string) (bool, error) {
	resp, err := s.client.DeleteTask(ctx, &api.DeleteTaskRequest{ID: id})
	if err != nil {
		return false, s.mapError(err)
	}
	return resp.Deleted, nil
}

func (s *GRPCClient) Stats(ctx context.Context) (tasks.Stats, error) {
	resp, err := s.client.Stats(ctx, &api.Empty{})
	if err != nil {
		return tasks.Stats{}, s.mapError(err)
	}
	return resp.Stats, nil
}

func (s *GRPCClient) Categories(ctx context.Context) ([]string, error) {
	resp, err := s.client.Categories(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Categories, nil
}

func (s *GRPCClient) AddCategory(ctx context.Context, name string) ([]string, error) {
	resp, err := s.client.AddCategory(ctx, &api.AddCategoryRequest{Name: name})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Categories, nil
}

func (s *GRPCClient) SeedSampleData(ctx context.Context) ([]tasks.Task, error) {
	resp, err := s.client.SeedSampleData(ctx, &api.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) Profile(ctx context.Context) (tasks.Profile, error) {
	resp, err := s.client.Profile(ctx, &api.Empty{})
	if err != nil {
		return tasks.Profile{}, s.mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.PermissionDenied:
		return ErrUnauthorized
	}

	mapped := api.FromStatus(err)
	if st.Code() == codes.Unauthenticated &&
		!errors.Is(mapped, auth.ErrInvalidCredentials) && !errors.Is(mapped, auth.ErrNotAuthenticated) {
		return ErrUnauthorized
	}
	return mapped
}
