package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/auth"
	"github.com/dmitrijs2005/gophtasks/internal/client/client"
	"github.com/dmitrijs2005/gophtasks/internal/client/config"
	"github.com/dmitrijs2005/gophtasks/internal/client/services"
	"github.com/dmitrijs2005/gophtasks/internal/idgen"
	"github.com/dmitrijs2005/gophtasks/internal/kv"
	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/tasks"
)

const pingTimeout = 5 * time.Second

type App struct {
	config  *config.Config
	backend services.Backend
	logger  logging.Logger
	user    *auth.User
	now     func() time.Time
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp builds the backend selected by c: the gRPC client when a server
// address is set, the local stores otherwise.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	b, err := newBackend(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		config:  c,
		backend: b,
		logger:  logger,
		now:     time.Now,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

func newBackend(ctx context.Context, c *config.Config, logger logging.Logger) (services.Backend, error) {
	if c.ServerEndpointAddr != "" {
		gc, err := client.NewTaskManagerClient(c.ServerEndpointAddr, c.Namespace)
		if err != nil {
			return nil, fmt.Errorf("client init error: %w", err)
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := gc.Ping(pingCtx); err != nil {
			_ = gc.Close()
			return nil, fmt.Errorf("server %s unreachable: %w", c.ServerEndpointAddr, err)
		}
		return gc, nil
	}

	authOpts, err := auth.Settings{
		Latency:      c.Latency,
		TokenFormat:  c.TokenFormat,
		SecretKey:    c.SecretKey,
		PasswordMode: c.PasswordMode,
	}.Options()
	if err != nil {
		return nil, err
	}

	ids, err := idgen.New(c.IDScheme)
	if err != nil {
		return nil, err
	}

	storageCfg := c.Storage
	storageCfg.Namespace = c.Namespace

	storage, closeFn, err := kv.Open(ctx, storageCfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	users := auth.NewStore(storage, append(authOpts, auth.WithLogger(logger), auth.WithIDGenerator(ids))...)
	ts := tasks.NewStore(storage, tasks.WithLogger(logger), tasks.WithIDGenerator(ids))

	return services.NewLocalBackend(users, ts, closeFn), nil
}

func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.backend.Close(); err != nil {
			a.logger.Error(ctx, "close failed", "error", err)
		}
	}()
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}
