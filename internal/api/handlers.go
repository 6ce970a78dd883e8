package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Greeting is the body returned by GET /
const Greeting = "Hello World"

// Handlers aggregates all HTTP handlers
type Handlers struct {
	version string
	logger  *zap.Logger
}

// NewHandlers creates a new Handlers instance. version is reported by Status.
func NewHandlers(version string, logger *zap.Logger) *Handlers {
	if version == "" {
		version = "dev"
	}
	return &Handlers{
		version: version,
		logger:  logger.Named("handlers"),
	}
}

// Hello handles GET /. Request body, headers and query are ignored.
func (h *Handlers) Hello(c *gin.Context) {
	c.String(http.StatusOK, Greeting)
}

// Status handles the /status and /health endpoints
func (h *Handlers) Status(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		Status:       "ok",
		Service:      ServiceName,
		Version:      h.version,
		APIVersion:   CurrentAPIVersion,
		Capabilities: APICapabilities[CurrentAPIVersion],
	})
}
