// Package grpc serves the task manager stores over gRPC.
//
// Each request is bound to a storage namespace taken from the
// x-namespace metadata header (or the server default). The credential and
// task stores are built over that namespace per call, so one server can
// host many independent profiles, each with its own single session.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/api"
	"github.com/dmitrijs2005/gophtasks/internal/auth"
	"github.com/dmitrijs2005/gophtasks/internal/idgen"
	"github.com/dmitrijs2005/gophtasks/internal/kv"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/tasks"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address   string
	storage   kv.Storage
	namespace string
	authOpts  []auth.Option
	taskOpts  []tasks.Option
	logger    logging.Logger
	metrics   *Metrics
	health    *health.Server
}

type Option func(*GRPCServer)

// WithNamespace sets the namespace used when a request carries none.
func WithNamespace(ns string) Option { return func(s *GRPCServer) { s.namespace = ns } }

func WithAuthOptions(opts ...auth.Option) Option {
	return func(s *GRPCServer) { s.authOpts = append(s.authOpts, opts...) }
}

func WithTaskOptions(opts ...tasks.Option) Option {
	return func(s *GRPCServer) { s.taskOpts = append(s.taskOpts, opts...) }
}

// WithMetrics records per-method request metrics.
func WithMetrics(m *Metrics) Option { return func(s *GRPCServer) { s.metrics = m } }

func NewGRPCServer(address string, l logging.Logger, storage kv.Storage, opts ...Option) *GRPCServer {
	logger := l.With("module", "grpc_server")

	// one generator for all requests keeps timestamp ids unique across calls
	ids := idgen.NewTimestamp(time.Now)

	s := &GRPCServer{
		address:  address,
		storage:  storage,
		logger:   logger,
		health:   health.NewServer(),
		authOpts: []auth.Option{auth.WithLogger(l), auth.WithIDGenerator(ids)},
		taskOpts: []tasks.Option{tasks.WithLogger(l), tasks.WithIDGenerator(ids)},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// stores returns the credential and task stores for the request namespace.
func (s *GRPCServer) stores(ctx context.Context) (*auth.Store, *tasks.Store) {
	storage := kv.WithNamespace(s.storage, namespaceFrom(ctx, s.namespace))
	return auth.NewStore(storage, s.authOpts...), tasks.NewStore(storage, s.taskOpts...)
}

func (s *GRPCServer) newServer() *grpc.Server {
	interceptors := []grpc.UnaryServerInterceptor{s.loggingInterceptor}
	if s.metrics != nil {
		interceptors = append(interceptors, s.metrics.UnaryInterceptor)
	}
	interceptors = append(interceptors, s.namespaceInterceptor)

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))

	api.RegisterTaskManagerServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
