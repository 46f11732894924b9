package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	app "github.com/R3E-Network/algorithm_service/internal/app"
	"github.com/R3E-Network/algorithm_service/internal/app/httpapi"
	"github.com/R3E-Network/algorithm_service/internal/app/metrics"
	"github.com/R3E-Network/algorithm_service/internal/app/storage"
	"github.com/R3E-Network/algorithm_service/internal/app/storage/memory"
	"github.com/R3E-Network/algorithm_service/internal/app/storage/sqlstore"
	"github.com/R3E-Network/algorithm_service/internal/config"
	"github.com/R3E-Network/algorithm_service/internal/middleware"
	"github.com/R3E-Network/algorithm_service/internal/platform/migrations"
)

// Application wires core dependencies and manages the HTTP server lifecycle.
type Application struct {
	cfg        *config.Config
	log        logrus.FieldLogger
	app        *app.Application
	handler    http.Handler
	httpServer *http.Server
	closer     io.Closer

	mu       sync.Mutex
	listener net.Listener
}

// NewApplication constructs the service from cfg: it opens (and when asked
// migrates) the configured store, builds the services, and assembles the
// middleware chain around the API router.
func NewApplication(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("runtime: config is required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	store, closer, err := buildStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("configure store: %w", err)
	}

	application, err := app.New(app.Stores{Users: store}, log)
	if err != nil {
		closeQuietly(closer, log)
		return nil, fmt.Errorf("build application: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
	if cfg.RateLimit.RPS > 0 {
		janitor, err := newLimiterJanitor(cfg.RateLimit.CleanupSchedule, limiter, log)
		if err != nil {
			closeQuietly(closer, log)
			return nil, err
		}
		if err := application.Attach(janitor); err != nil {
			closeQuietly(closer, log)
			return nil, err
		}
	}

	router := httpapi.NewHandler(application, httpapi.Limits{
		MaxArrayLen:   cfg.Algorithms.MaxArrayLen,
		MaxPrimeLimit: cfg.Algorithms.MaxPrimeLimit,
	})

	var handler http.Handler = router
	handler = limiter.Handler(handler)
	handler = middleware.NewCORSMiddleware(cfg.HTTP.AllowedOrigins()).Handler(handler)
	handler = middleware.NewTracingMiddleware(log).Handler(handler)
	handler = metrics.InstrumentHandler(handler)

	return &Application{
		cfg:     cfg,
		log:     log,
		app:     application,
		handler: handler,
		closer:  closer,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Addr(),
			Handler:           handler,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		},
	}, nil
}

// App exposes the composed services.
func (a *Application) App() *app.Application {
	return a.app
}

// Handler returns the fully wrapped HTTP handler.
func (a *Application) Handler() http.Handler {
	return a.handler
}

// Addr reports the bound listener address once Run has started listening.
func (a *Application) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listener == nil {
		return ""
	}
	return a.listener.Addr().String()
}

// Run starts background services and the HTTP server, blocking until ctx is
// cancelled or the server fails.
func (a *Application) Run(ctx context.Context) error {
	if err := a.app.Start(ctx); err != nil {
		return fmt.Errorf("start services: %w", err)
	}

	ln, err := net.Listen("tcp", a.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.httpServer.Addr, err)
	}
	a.mu.Lock()
	a.listener = ln
	a.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("addr", ln.Addr().String()).Info("HTTP server listening")
		if err := a.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server, background services and store.
func (a *Application) Shutdown(ctx context.Context) error {
	timeout := a.cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var errs []error
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if err := a.app.Stop(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	if a.closer != nil {
		if err := a.closer.Close(); err != nil {
			a.log.WithError(err).Warn("error closing database connection")
		}
	}
	return errors.Join(errs...)
}

func buildStore(ctx context.Context, cfg config.StorageConfig, log logrus.FieldLogger) (storage.UserStore, io.Closer, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		log.Info("using in-memory user store")
		return memory.New(), nil, nil
	case config.DriverPostgres, config.DriverSQLite:
		if cfg.AutoMigrate {
			if err := migrations.Apply(ctx, cfg.Driver, cfg.DSN); err != nil {
				return nil, nil, err
			}
			log.WithField("driver", cfg.Driver).Info("database schema up to date")
		}
		store, err := sqlstore.Open(ctx, sqlstore.Options{
			Driver:          cfg.Driver,
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
		}
		log.WithField("driver", cfg.Driver).Info("using SQL user store")
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

func closeQuietly(c io.Closer, log logrus.FieldLogger) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.WithError(err).Warn("error closing database connection")
	}
}
