// Package server hosts the greeter application on its own listener.
//
// The public listener serves only the application built by internal/app.
// Status, health and Prometheus metrics live on a separate admin listener,
// enabled by a non-zero admin port, so the public route table stays a single
// route.
//
// Usage:
//
//	srv := server.New(cfg, logger, server.WithVersion(version))
//	if err := srv.Listen(); err != nil {
//		// errors.Is(err, server.ErrBind)
//	}
//	err := srv.Serve(ctx) // returns after ctx is cancelled
package server
