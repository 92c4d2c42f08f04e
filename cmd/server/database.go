package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/database"
)

// setupAppDatabase opens the configured database.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, database.Dialect, error) {
	db, dialect, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		return nil, "", fmt.Errorf("failed to set up database: %w", err)
	}
	return db, dialect, nil
}

func closeDB(db *sql.DB, logger *slog.Logger) {
	if err := db.Close(); err != nil {
		logger.Error("error closing database connection", slog.String("error", err.Error()))
	}
}
