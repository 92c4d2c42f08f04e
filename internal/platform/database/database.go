package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/taskboard-api/internal/config"
	_ "modernc.org/sqlite" // sqlite driver
)

// Dialect identifies the SQL backend behind a *sql.DB.
type Dialect string

const (
	// DialectPostgres is PostgreSQL through the "pgx" driver.
	DialectPostgres Dialect = "postgres"
	// DialectSQLite is SQLite through the "sqlite" driver.
	DialectSQLite Dialect = "sqlite"
)

// pingTimeout bounds the connectivity check performed by Open.
const pingTimeout = 5 * time.Second

// Open establishes a connection to the configured database, configures the
// connection pool and verifies connectivity with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, Dialect, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialect, driver, dsn := resolve(cfg)
	log := logger.With(
		slog.String("component", "database"),
		slog.String("dialect", string(dialect)),
	)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	switch dialect {
	case DialectSQLite:
		// SQLite allows a single writer; one shared connection avoids
		// SQLITE_BUSY between concurrent transactions.
		db.SetMaxOpenConns(1)
		log.Info("using local SQLite database", slog.String("dsn", dsn))
	default:
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(max(cfg.MaxOpenConns/2, 1))
		db.SetConnMaxLifetime(5 * time.Minute)
		log.Info("using PostgreSQL database", slog.String("url", MaskURL(cfg.URL)))
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established")
	return db, dialect, nil
}

// OpenSQLite opens (creating if needed) the SQLite database file at path.
func OpenSQLite(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	db, _, err := Open(ctx, config.DatabaseConfig{ForceLocal: true, LocalPath: path, MaxOpenConns: 1}, logger)
	return db, err
}

// resolve picks the dialect, driver name and data source name for cfg.
func resolve(cfg config.DatabaseConfig) (Dialect, string, string) {
	if cfg.ForceLocal {
		return DialectSQLite, "sqlite", SQLiteDSN(cfg.LocalPath)
	}
	if cfg.UsesSQLite() {
		return DialectSQLite, "sqlite", SQLiteDSN(sqlitePath(cfg.URL))
	}
	return DialectPostgres, "pgx", cfg.URL
}

// sqlitePath extracts the file path from a "sqlite:" URL. The SQLAlchemy form
// is understood: sqlite:///relative.db and sqlite:////absolute.db.
// "file:" URLs are returned unchanged.
func sqlitePath(rawURL string) string {
	lower := strings.ToLower(rawURL)
	switch {
	case strings.HasPrefix(lower, "sqlite:///"):
		return rawURL[len("sqlite:///"):]
	case strings.HasPrefix(lower, "sqlite://"):
		return rawURL[len("sqlite://"):]
	case strings.HasPrefix(lower, "sqlite:"):
		return rawURL[len("sqlite:"):]
	default:
		return rawURL
	}
}

// SQLiteDSN builds the modernc.org/sqlite data source name for a file path.
// Foreign keys are enforced, writers wait for locks instead of failing, and
// times are written in a sortable format so that range queries compare
// correctly.
func SQLiteDSN(path string) string {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// MaskURL masks the password in a database URL for safe logging.
func MaskURL(dbURL string) string {
	parsedURL, err := url.Parse(dbURL)
	if err != nil {
		return "invalid-url"
	}

	if parsedURL.User != nil {
		if _, hasPassword := parsedURL.User.Password(); hasPassword {
			parsedURL.User = url.UserPassword(parsedURL.User.Username(), "****")
		}
		return parsedURL.String()
	}

	return dbURL
}
