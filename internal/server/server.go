package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/makeadle/dle-service/internal/app/play"
	"github.com/makeadle/dle-service/internal/config"
	"github.com/makeadle/dle-service/internal/game"
	httpserver "github.com/makeadle/dle-service/internal/http"
	"github.com/makeadle/dle-service/internal/http/handlers"
	"github.com/makeadle/dle-service/internal/logging"
	"github.com/makeadle/dle-service/internal/metrics"
	"github.com/makeadle/dle-service/internal/providers"
	"github.com/makeadle/dle-service/internal/store"
	"github.com/makeadle/dle-service/internal/sweeper"
)

var metricsSetup = metrics.Setup

// Sweeper defines the minimal sweeper behavior needed by the server.
type Sweeper interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() sweeper.Status
}

// Server hosts game sessions over HTTP.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	service       *play.Service
	httpServer    httpServer
	metricsServer httpServer
	sweeper       Sweeper
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured scorer.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)
	scorer, err := BuildScorer(cfg.Scorer, logger, recorder)
	if err != nil {
		return nil, fmt.Errorf("build scorer: %w", err)
	}
	srv, err := newServerWithScorer(cfg, logger, scorer, recorder)
	if err != nil {
		return nil, err
	}
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv, nil
}

func newServerWithScorer(cfg config.Config, logger *slog.Logger, scorer providers.Scorer, recorder *metrics.Recorder) (*Server, error) {
	order, err := game.ParseHistoryOrder(cfg.Scorer.HistoryOrder)
	if err != nil {
		return nil, err
	}
	memoryStore := store.NewMemoryStore()
	svc := play.NewService(scorer, memoryStore, play.Options{
		HistoryOrder: order,
		Strict:       cfg.Session.Strict,
		Logger:       logger,
		Recorder:     recorder,
	})
	sw := sweeper.New(memoryStore, logger, recorder, cfg.Session.SweepInterval, cfg.Session.IdleTimeout)

	h := handlers.NewHandler(svc, logger, cfg.PublicURL, sw.Status)

	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    recorder,
		store:      memoryStore,
		service:    svc,
		httpServer: newListener(cfg.Port, httpserver.NewRouter(h, logger, recorder)),
		sweeper:    sw,
	}, nil
}

// Run starts the sweeper and HTTP servers, then waits for context cancellation
// to shut down gracefully. A listener failure also shuts the server down.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	s.sweeper.Start(gctx)
	g.Go(func() error { return s.serve("http", s.httpServer) })
	if s.metricsServer != nil {
		g.Go(func() error { return s.serve("metrics", s.metricsServer) })
	}
	g.Go(func() error {
		<-gctx.Done()
		logging.Info(s.logger, "shutdown signal received")
		s.gracefulShutdown()
		return nil
	})

	err := g.Wait()
	logging.Info(s.logger, "shutdown complete")
	return err
}

func (s *Server) serve(name string, srv httpServer) error {
	logging.Info(s.logger, name+" server starting", slog.String("addr", srv.Addr()))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.sweeper.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop sweeper", err)
	}
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}
	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newListener(recCfg.Port, handler)
	}
	return rec, metricsSrv, shutdown
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
