package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yigit/jobly/internal/bootstrap"
	"github.com/yigit/jobly/internal/config"
	"github.com/yigit/jobly/internal/pkg/helpers"
)

const (
	defaultTimeout  = 10 * time.Second
	idleTimeout     = 120 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	dbPool *pgxpool.Pool
	logger zerolog.Logger
	http   *http.Server
}

// NewServer loads configuration, connects to the database, seeds it and
// builds the router.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	dbPool, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps := bootstrap.BuildDependencies(cfg, dbPool, lgr)

	seedCtx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	bootstrap.SeedData(seedCtx, cfg, deps, lgr)

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config: cfg,
		dbPool: dbPool,
		logger: lgr,
		http:   newHTTPServer(cfg, router),
	}, nil
}

// newHTTPServer applies the configured timeouts; unparsable values fall back
// to defaultTimeout
func newHTTPServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  helpers.ParseDuration(cfg.Server.ReadTimeout, defaultTimeout),
		WriteTimeout: helpers.ParseDuration(cfg.Server.WriteTimeout, defaultTimeout),
		IdleTimeout:  idleTimeout,
	}
}

// Run starts the HTTP server and blocks until it fails or the process is
// asked to stop, then shuts down gracefully.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(osSignals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closePool()
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown drains in-flight requests, then closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = fmt.Errorf("http shutdown: %w", err)
		}
	}

	s.closePool()
	s.logger.Info().Msg("Server shutdown process complete.")
	return shutdownErr
}

func (s *Server) closePool() {
	if s.dbPool == nil {
		return
	}
	s.dbPool.Close()
	s.logger.Info().Msg("Database connection pool closed.")
}
