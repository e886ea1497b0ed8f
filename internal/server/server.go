package server

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/post-board/internal/config"
	"github.com/MKhiriev/post-board/internal/handler"
	"github.com/MKhiriev/post-board/internal/logger"
	"github.com/MKhiriev/post-board/internal/workers"
)

// shutdownTimeout bounds how long in-flight requests may take to finish
// once a stop signal arrived.
const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	workers    *workers.Workers
	logger     *logger.Logger
}

// NewServer builds the HTTP server for handlers. background is started
// together with the server and stopped after it; it may be nil.
func NewServer(handlers *handler.Handlers, background *workers.Workers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	if background == nil {
		background = workers.NewWorkers()
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		workers:    background,
		logger:     logger,
	}, nil
}

// RunServer serves until ctx is cancelled or SIGTERM, SIGINT or SIGQUIT
// arrives, then shuts down gracefully. The background workers run for the
// same lifetime.
func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	workersDone := make(chan struct{})
	go func() {
		s.workers.Run(ctx)
		close(workersDone)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer(ctx)
	}()

	var runErr error
	select {
	case runErr = <-serveErr:
		if runErr != nil {
			runErr = fmt.Errorf("error running HTTP server: %w", runErr)
		}
		stop()
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	shutdownErr := s.Shutdown(shutdownCtx)
	<-workersDone

	s.logger.Info().Msg("server Shutdown gracefully")

	return errors.Join(runErr, shutdownErr)
}

func (s *server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down HTTP server: %w", err)
	}

	return nil
}
