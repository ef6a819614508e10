// Package bootstrap runs long-lived commands until they finish or the process is stopped.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultShutdownTimeout bounds the time the shutdown hooks get in total.
const DefaultShutdownTimeout = 10 * time.Second

// App runs a command and releases what it started, in reverse order of registration.
type App struct {
	shutdownTimeout time.Duration

	mu    sync.Mutex
	hooks []func(ctx context.Context) error
}

func New() *App {
	return &App{shutdownTimeout: DefaultShutdownTimeout}
}

// AddShutdownHook registers a function to call during shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run executes run until it returns or the process receives SIGINT or SIGTERM.
// The shutdown hooks run in both cases. An error from run comes first, followed by hook errors.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Default().Info("shutting down", slog.Any("cause", context.Cause(ctx)))
	case runErr = <-errCh:
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), a.shutdownTimeout)
	defer shutdownCancel()
	return errors.Join(runErr, a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
