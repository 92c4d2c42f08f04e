package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
)

// loadAppConfig loads the configuration from path, or from defaults,
// ./config.yaml and the environment when path is empty.
func loadAppConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Bool("local_database", cfg.Database.UsesSQLite()),
		slog.Bool("preview", cfg.Preview.Enabled))

	return cfg, nil
}
