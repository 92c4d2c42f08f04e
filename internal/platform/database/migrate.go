package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"
	goosedb "github.com/pressly/goose/v3/database"
)

// MigrationTableName is the name of the table used by goose to track migrations.
const MigrationTableName = "schema_migrations"

// Migration commands accepted by Migrate.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandReset   = "reset"
	CommandStatus  = "status"
	CommandVersion = "version"
)

// ErrUnknownCommand is returned by Migrate for an unsupported command.
var ErrUnknownCommand = errors.New("unknown migration command")

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// slogGooseLogger adapts the goose logger interface to use slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error.
// Unlike the standard Fatalf it does NOT call os.Exit; errors are returned to the caller.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// newProvider creates a goose provider for the embedded migrations of dialect.
func newProvider(db *sql.DB, dialect Dialect, logger *slog.Logger) (*goose.Provider, error) {
	var (
		gooseDialect goosedb.Dialect
		dir          string
	)
	switch dialect {
	case DialectPostgres:
		gooseDialect, dir = goosedb.DialectPostgres, "migrations/postgres"
	case DialectSQLite:
		gooseDialect, dir = goosedb.DialectSQLite3, "migrations/sqlite"
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	fsys, err := fs.Sub(migrationFiles, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	store, err := goosedb.NewStore(gooseDialect, MigrationTableName)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration store: %w", err)
	}

	return goose.NewProvider("", db, fsys,
		goose.WithStore(store),
		goose.WithLogger(&slogGooseLogger{logger: logger}),
	)
}

// Migrate runs a migration command against db:
//
//	up       apply all pending migrations
//	down     roll back the most recent migration
//	reset    roll back all migrations, then apply them again (empty schema)
//	status   log the state of every migration
//	version  log the current schema version
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("dialect", string(dialect)),
	)

	provider, err := newProvider(db, dialect, log)
	if err != nil {
		return err
	}

	startTime := time.Now()
	log.Info("starting migration operation")

	switch command {
	case CommandUp:
		results, upErr := provider.Up(ctx)
		logResults(log, results)
		err = upErr
	case CommandDown:
		result, downErr := provider.Down(ctx)
		if errors.Is(downErr, goose.ErrNoNextVersion) {
			log.Info("no migrations to roll back")
			downErr = nil
		}
		if result != nil {
			logResults(log, []*goose.MigrationResult{result})
		}
		err = downErr
	case CommandReset:
		results, downErr := provider.DownTo(ctx, 0)
		logResults(log, results)
		if downErr != nil {
			err = downErr
			break
		}
		results, err = provider.Up(ctx)
		logResults(log, results)
	case CommandStatus:
		var statuses []*goose.MigrationStatus
		statuses, err = provider.Status(ctx)
		for _, s := range statuses {
			log.Info("migration status",
				slog.Int64("version", s.Source.Version),
				slog.String("path", s.Source.Path),
				slog.String("state", string(s.State)),
				slog.Time("applied_at", s.AppliedAt))
		}
	case CommandVersion:
		var version int64
		version, err = provider.GetDBVersion(ctx)
		if err == nil {
			log.Info("current database migration version", slog.Int64("version", version))
		}
	default:
		return fmt.Errorf("%w: %s (expected up, down, reset, status or version)", ErrUnknownCommand, command)
	}

	if err != nil {
		log.Error("migration command failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("migration command executed successfully",
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return nil
}

// Version returns the current schema version of db.
func Version(ctx context.Context, db *sql.DB, dialect Dialect) (int64, error) {
	provider, err := newProvider(db, dialect, slog.Default())
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

func logResults(log *slog.Logger, results []*goose.MigrationResult) {
	for _, r := range results {
		attrs := []any{
			slog.Int64("version", r.Source.Version),
			slog.String("path", r.Source.Path),
			slog.String("direction", r.Direction),
			slog.Int64("duration_ms", r.Duration.Milliseconds()),
		}
		if r.Error != nil {
			log.Error("migration failed", append(attrs, slog.String("error", r.Error.Error()))...)
			continue
		}
		log.Info("migration applied", attrs...)
	}
}
