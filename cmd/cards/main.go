package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/joseph-ayodele/visiting-cards/internal/app"
	"github.com/joseph-ayodele/visiting-cards/internal/common"
)

var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Version  kong.VersionFlag `help:"Show version." short:"V"`
	EnvFile  string           `help:"Load environment from this file." default:".env" type:"path"`
	DB       string           `help:"Database URL (overrides DB_URL)." placeholder:"DSN"`
	LogLevel string           `help:"Log level." enum:"debug,info,warn,error" default:"warn"`
	LogJSON  bool             `help:"Log as JSON."`
}

// CLI is the top-level command structure for cards.
type CLI struct {
	Globals

	Extract ExtractCmd `cmd:"" help:"Extract contact fields from OCR text (nothing is stored)."`
	Scan    ScanCmd    `cmd:"" help:"OCR card images and store the extracted contacts."`
	Add     AddCmd     `cmd:"" help:"Store a manually entered contact."`
	List    ListCmd    `cmd:"" help:"List stored contacts."`
	Delete  DeleteCmd  `cmd:"" help:"Delete every contact with the given name."`
	Export  ExportCmd  `cmd:"" help:"Export stored contacts to an XLSX workbook."`
	Watch   WatchCmd   `cmd:"" help:"Watch directories and store new cards as they appear."`
}

func (g *Globals) logger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.LogLevel)); err != nil {
		level = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if g.LogJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// config loads .env (when present) and the environment, then applies flags.
func (g *Globals) config() *common.Config {
	if err := godotenv.Load(g.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: %s: %v\n", g.EnvFile, err)
	}
	cfg := common.LoadConfig()
	if g.DB != "" {
		cfg.Database.DSN = g.DB
	}
	return cfg
}

func (g *Globals) open(ctx context.Context) (*app.App, *slog.Logger, error) {
	logger := g.logger()
	a, err := app.New(ctx, g.config(), logger)
	if err != nil {
		return nil, logger, err
	}
	return a, logger, nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("cards"),
		kong.Description("Extract contact details from business card photos."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	err := kctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidInput):
		return 2
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
