package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/sirosfoundation/go-hello-server/internal/api"
	"github.com/sirosfoundation/go-hello-server/internal/app"
	"github.com/sirosfoundation/go-hello-server/pkg/config"
	"github.com/sirosfoundation/go-hello-server/pkg/metrics"
	"github.com/sirosfoundation/go-hello-server/pkg/middleware"
)

// ErrBind is wrapped by every listener bind failure
var ErrBind = errors.New("failed to bind listener")

// ErrNotListening is returned by Serve when Listen has not succeeded
var ErrNotListening = errors.New("server is not listening")

// ErrAlreadyListening is returned by Listen when the listeners are already bound
var ErrAlreadyListening = errors.New("server is already listening")

// Option customizes New
type Option func(*Server)

// WithVersion sets the build version reported by the admin status endpoints
func WithVersion(version string) Option {
	return func(s *Server) { s.version = version }
}

// Server owns the public listener and, when configured, the admin listener
type Server struct {
	cfg     *config.Config
	logger  *zap.Logger
	version string

	metrics *metrics.Collector

	httpServer  *http.Server
	adminServer *http.Server

	httpListener  net.Listener
	adminListener net.Listener
}

// New builds the routers and http.Servers. Nothing is bound until Listen.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	var appOpts []app.Option
	if cfg.Admin.Port > 0 {
		s.metrics = metrics.NewCollector()
		appOpts = append(appOpts, app.WithMetrics(s.metrics))
	}

	s.httpServer = s.newHTTPServer(cfg.Server.Address(), app.New(cfg, logger, appOpts...))

	if cfg.Admin.Port > 0 {
		s.adminServer = s.newHTTPServer(cfg.Admin.Address(cfg.Server.Host), NewAdminRouter(logger, s.version, s.metrics))
	}

	return s
}

func (s *Server) newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
}

// NewAdminRouter creates the router for status, health and metrics
func NewAdminRouter(logger *zap.Logger, version string, collector *metrics.Collector) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger.Named("admin")))

	handlers := api.NewHandlers(version, logger)
	router.GET("/status", handlers.Status)
	router.GET("/health", handlers.Status)
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	return router
}

// Handler returns the public application
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Listen binds the public listener and the admin listener if enabled.
// Failures wrap ErrBind and are not retried.
func (s *Server) Listen() error {
	if s.httpListener != nil {
		return ErrAlreadyListening
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %w", ErrBind, s.httpServer.Addr, err)
	}
	s.httpListener = ln

	if s.adminServer != nil {
		adminLn, err := net.Listen("tcp", s.adminServer.Addr)
		if err != nil {
			_ = s.httpListener.Close()
			s.httpListener = nil
			return fmt.Errorf("%w on %s: %w", ErrBind, s.adminServer.Addr, err)
		}
		s.adminListener = adminLn
	}

	return nil
}

// Addr returns the bound public address, or nil before Listen
func (s *Server) Addr() net.Addr {
	if s.httpListener == nil {
		return nil
	}
	return s.httpListener.Addr()
}

// AdminAddr returns the bound admin address, or nil if not listening
func (s *Server) AdminAddr() net.Addr {
	if s.adminListener == nil {
		return nil
	}
	return s.adminListener.Addr()
}

// Serve serves on the bound listeners until ctx is cancelled or a listener
// fails, then shuts down within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context) error {
	if s.httpListener == nil {
		return ErrNotListening
	}

	errCh := make(chan error, 2)

	go func() {
		s.logger.Info("Public server listening", zap.String("address", s.httpListener.Addr().String()))
		if err := s.httpServer.Serve(s.httpListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("public server: %w", err)
		}
	}()

	if s.adminListener != nil {
		go func() {
			s.logger.Info("Admin server listening", zap.String("address", s.adminListener.Addr().String()))
			if err := s.adminServer.Serve(s.adminListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("admin server: %w", err)
			}
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		s.logger.Error("Server error", zap.Error(serveErr))
	}

	s.logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		serveErr = multierror.Append(serveErr, err).ErrorOrNil()
	}

	s.logger.Info("Server exited")
	return serveErr
}

// Run binds and then serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Shutdown gracefully shuts down all servers
func (s *Server) Shutdown(ctx context.Context) error {
	var errs *multierror.Error

	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("public server shutdown: %w", err))
	}

	if s.adminServer != nil {
		if err := s.adminServer.Shutdown(ctx); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("admin server shutdown: %w", err))
		}
	}

	return errs.ErrorOrNil()
}
