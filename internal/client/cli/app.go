package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/scholarhub/internal/buildinfo"
	"github.com/dmitrijs2005/scholarhub/internal/client/apiclient"
	"github.com/dmitrijs2005/scholarhub/internal/client/config"
	"github.com/dmitrijs2005/scholarhub/internal/client/endpoints"
	"github.com/dmitrijs2005/scholarhub/internal/client/metrics"
	"github.com/dmitrijs2005/scholarhub/internal/client/repositories/kv"
	"github.com/dmitrijs2005/scholarhub/internal/client/services"
	"github.com/dmitrijs2005/scholarhub/internal/client/session"
	"github.com/dmitrijs2005/scholarhub/internal/common"
	"github.com/dmitrijs2005/scholarhub/internal/filex"
	"github.com/dmitrijs2005/scholarhub/internal/formatx"
	"github.com/dmitrijs2005/scholarhub/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

const sessionFile = "session.db"

type App struct {
	config          *config.Config
	authService     services.AuthService
	documentService services.DocumentService
	userService     services.UserService
	store           *session.Store
	links           *endpoints.Registry
	logger          logging.Logger
	reader          *bufio.Reader
	out             io.Writer
	route           string

	closers       []io.Closer
	metricsServer *http.Server
	stopWatch     func()
}

// NewApp wires storage, transport, session and services from c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, c.LogLevel, c.LogFormat)

	registry, err := endpoints.New(c.APIBaseURL)
	if err != nil {
		return nil, err
	}

	dsn := c.StorageDSN
	if dsn == "" && (c.StorageDriver == "" || c.StorageDriver == kv.DriverSQLite) {
		dsn, err = filex.DataFile(strings.ToLower(common.AppName), sessionFile)
		if err != nil {
			return nil, fmt.Errorf("resolve session file: %w", err)
		}
	}

	repo, closer, err := kv.Open(ctx, kv.Options{
		Driver:        c.StorageDriver,
		DSN:           dsn,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisPrefix:   c.RedisPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	api := apiclient.New(&http.Client{}, registry, logger, collector,
		apiclient.WithTimeout(c.RequestTimeout),
		apiclient.WithUserAgent(common.AppName+"-cli/"+buildinfo.BuildVersion),
	)

	store := session.New(repo, logger, session.WithRecorder(collector))
	store.Load(ctx)

	a := &App{
		config:  c,
		store:   store,
		links:   registry,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
		route:   endpoints.RouteHome,
		closers: []io.Closer{closer},
	}
	a.authService = services.NewAuthService(api, store, a, logger, c.ExpireSessionOnNetworkError)
	a.documentService = services.NewDocumentService(api, newTerminalOpener(a.out, logger), logger)
	a.userService = services.NewUserService(api, store, logger)
	a.stopWatch = a.watchSession(ctx)

	if c.MetricsAddr != "" {
		a.startMetrics(ctx, reg)
	}

	return a, nil
}

// Navigate records the current route; it backs the prompt. Admin routes
// are only entered by admin sessions, anyone else lands on the home route.
func (a *App) Navigate(route string) {
	if endpoints.IsAdminRoute(route) && !a.isAdmin() {
		a.logger.Debug(context.Background(), "admin route refused", "route", route)
		route = endpoints.RouteHome
	}
	a.route = route
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close stops background work and releases storage.
func (a *App) Close() {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_ = a.metricsServer.Shutdown(ctx)
		cancel()
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(context.Background(), "close failed", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	return a.authService.IsAdmin()
}

// watchSession logs session changes, collapsing bursts into one entry.
func (a *App) watchSession(ctx context.Context) func() {
	call, stop := formatx.Debounce(func(s session.Snapshot) {
		a.logger.Debug(ctx, "session changed", "authenticated", s.Authenticated, "admin", s.Admin)
	}, formatx.DefaultDebounceWait)

	unsubscribe := a.store.Subscribe(call)
	return func() {
		unsubscribe()
		stop()
	}
}

func (a *App) startMetrics(ctx context.Context, reg *prometheus.Registry) {
	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           metrics.Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		a.logger.Info(ctx, "serving metrics", "addr", a.config.MetricsAddr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(ctx, "metrics server stopped", "error", err)
		}
	}()
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

// message is the user-facing text of err. Server-supplied text is reduced
// to plain text before it reaches the terminal.
func message(err error) string {
	if apiErr, ok := apiclient.AsError(err); ok {
		return formatx.PlainText(apiErr.Message)
	}
	return apiclient.Message(err)
}
