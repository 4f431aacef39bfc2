package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/joseph-ayodele/visiting-cards/internal/app"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
	"github.com/joseph-ayodele/visiting-cards/internal/repository"
	"github.com/joseph-ayodele/visiting-cards/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	logger := newLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("cardsd exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	defer a.Close()

	if err := repository.HealthCheck(ctx, a.DB, cfg.Database.DialTimeout, logger); err != nil {
		return fmt.Errorf("database health: %w", err)
	}
	logger.Info("database health OK", "driver", cfg.Database.Driver)

	grpcServer, hs := server.NewGRPCServer(a.Service, logger)

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.GRPCAddr, err)
	}
	logger.Info("gRPC serving", "addr", lis.Addr().String())

	serveErr := make(chan error, 1)
	go func() { serveErr <- grpcServer.Serve(lis) }()

	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case err := <-serveErr:
		return fmt.Errorf("grpc serve: %w", err)
	}
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	grpcServer.GracefulStop()
	logger.Info("stopped")
	return nil
}

// newLogger logs text to a terminal and JSON otherwise. LOG_LEVEL sets the level.
func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(os.Getenv("LOG_LEVEL")))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
