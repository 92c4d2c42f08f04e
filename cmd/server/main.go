// Package main is the entry point of the taskboard API server, which serves
// hierarchical tasks and employee attendance records over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/taskboard-api/internal/platform/database"
)

// options are the command line flags of the server.
type options struct {
	configPath string
	migrate    string
}

var errUsage = errors.New("invalid usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		slog.Error("taskboard server failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

// run parses args, then either runs a migration command or serves the API
// until ctx is canceled.
func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadAppConfig(opts.configPath)
	if err != nil {
		return err
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	db, dialect, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if opts.migrate != "" {
		defer closeDB(db, logger)
		return database.Migrate(ctx, db, dialect, opts.migrate, logger)
	}

	app, err := newApplication(ctx, cfg, logger, db, dialect)
	if err != nil {
		closeDB(db, logger)
		return err
	}
	return app.Run(ctx)
}

// parseFlags parses the command line. Valid -migrate commands are those
// accepted by database.Migrate.
func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("taskboard-server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "path to a config file (default: ./config.yaml if present)")
	fs.StringVar(&opts.migrate, "migrate", "",
		"run a migration command (up|down|reset|status|version) and exit")

	if err := fs.Parse(args); err != nil {
		return opts, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}

	switch opts.migrate {
	case "", database.CommandUp, database.CommandDown, database.CommandReset,
		database.CommandStatus, database.CommandVersion:
	default:
		return opts, fmt.Errorf("%w: unknown migration command %q", errUsage, opts.migrate)
	}

	return opts, nil
}
