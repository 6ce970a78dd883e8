package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sirosfoundation/go-hello-server/internal/server"
	"github.com/sirosfoundation/go-hello-server/pkg/config"
	"github.com/sirosfoundation/go-hello-server/pkg/logging"
)

var (
	configFile = flag.String("config", "configs/config.yaml", "Path to configuration file")
	envFile    = flag.String("env-file", ".env", "Path to dotenv file")
	version    = "dev"
	buildTime  = "unknown"
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFile, *envFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting greeter server",
		zap.String("version", version),
		zap.String("build_time", buildTime),
	)

	// Set Gin mode
	if cfg.Logging.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New(cfg, logger, server.WithVersion(version))

	// A bind failure aborts startup
	if err := srv.Listen(); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Serve(ctx); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
