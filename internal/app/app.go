// Package app builds the public greeter application: a gin engine whose route
// table holds exactly one route, GET /.
//
// The engine is the application object. The self-hosted server wraps it in an
// http.Server; hosting platforms receive it through pkg/hosting.
package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sirosfoundation/go-hello-server/internal/api"
	"github.com/sirosfoundation/go-hello-server/pkg/config"
	"github.com/sirosfoundation/go-hello-server/pkg/middleware"
)

// Route is one entry of the route table
type Route struct {
	Method string
	Path   string
}

type options struct {
	observer middleware.Observer
}

// Option customizes New
type Option func(*options)

// WithMetrics records public request metrics into obs
func WithMetrics(obs middleware.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// New builds the public router. Unknown paths and methods get gin's default
// 404 response.
//
// gin's mode is process-wide and is left to the caller; cmd/server sets it
// from the log level before building the server.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *gin.Engine {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Named("http")))
	if o.observer != nil {
		router.Use(middleware.Metrics(o.observer))
	}
	if cfg.CORS.Enabled() {
		router.Use(middleware.CORS(cfg.CORS))
	}

	handlers := api.NewHandlers("", logger)

	router.GET("/", handlers.Hello)

	logger.Debug("Public routes registered", zap.Any("routes", Routes(router)))

	return router
}

// Routes returns the route table of a router built by New
func Routes(router *gin.Engine) []Route {
	infos := router.Routes()
	routes := make([]Route, 0, len(infos))
	for _, info := range infos {
		routes = append(routes, Route{Method: info.Method, Path: info.Path})
	}
	return routes
}
