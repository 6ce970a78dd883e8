// Package hosting hands the greeter application to a hosting platform that
// owns binding, serving, TLS and shutdown.
//
// Platforms that accept an http.Handler call Handoff with their entry point.
// Platforms that invoke an exported handler function route requests to
// Handler. Neither path opens a listener.
package hosting

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/sirosfoundation/go-hello-server/internal/app"
	"github.com/sirosfoundation/go-hello-server/pkg/config"
	"github.com/sirosfoundation/go-hello-server/pkg/logging"
)

// ErrNoEntryPoint is returned by Handoff when the entry point is nil
var ErrNoEntryPoint = errors.New("no hosting entry point")

// EntryPoint is supplied by the hosting platform and receives the application
type EntryPoint func(app http.Handler) error

type options struct {
	cfg    *config.Config
	logger *zap.Logger
}

// Option customizes App and Handoff
type Option func(*options)

// WithConfig uses cfg instead of loading GREETER_* environment variables
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogger uses logger instead of building one from the logging config
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// App builds the application object
func App(opts ...Option) (http.Handler, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cfg := o.cfg
	if cfg == nil {
		var err error
		cfg, err = config.Load("", "")
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
	}

	logger := o.logger
	if logger == nil {
		var err error
		logger, err = logging.NewLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	return app.New(cfg, logger), nil
}

// Handoff builds the application and passes it to entry
func Handoff(entry EntryPoint, opts ...Option) error {
	if entry == nil {
		return ErrNoEntryPoint
	}

	handler, err := App(opts...)
	if err != nil {
		return err
	}

	if err := entry(handler); err != nil {
		return fmt.Errorf("hosting entry point failed: %w", err)
	}
	return nil
}

var (
	defaultOnce    sync.Once
	defaultHandler http.Handler
	defaultErr     error
)

// Handler serves a request with an application built on first use from the
// environment. If that build fails every request gets a 500.
func Handler(w http.ResponseWriter, r *http.Request) {
	defaultOnce.Do(func() {
		defaultHandler, defaultErr = App()
	})
	if defaultErr != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defaultHandler.ServeHTTP(w, r)
}
