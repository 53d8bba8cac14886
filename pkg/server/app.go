package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StratLab/internal/service/ratelimit"
	xhttp "StratLab/pkg/http"
	"StratLab/pkg/logger"
)

// sweepInterval is how often idle rate-limit buckets are dropped.
const sweepInterval = time.Minute

// App encapsulates the entire application lifecycle.
type App struct {
	httpServer *xhttp.Server
	limiter    *ratelimit.Limiter
	log        *logger.Logger
}

// New creates a new App instance with all dependencies.
func New(srv *xhttp.Server, limiter *ratelimit.Limiter, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	return &App{httpServer: srv, limiter: limiter, log: log}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return a.RunContext(ctx)
}

// RunContext starts the HTTP server and blocks until ctx is done, then shuts down.
func (a *App) RunContext(ctx context.Context) error {
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", logger.Error(err))
		return err
	}
	if a.limiter != nil {
		go a.sweep(ctx)
	}

	<-ctx.Done()
	a.log.Info("shutdown signal received")
	return a.shutdown()
}

func (a *App) sweep(ctx context.Context) {
	t := time.NewTicker(sweepInterval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := a.limiter.Sweep(sweepInterval); n > 0 {
				a.log.Debug("ratelimit buckets swept", logger.Int("count", n))
			}
		}
	}
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.httpServer.ShutdownTimeout())
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", logger.Error(err))
		return err
	}

	a.log.Info("shutdown complete")
	return nil
}
