package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Preview  PreviewConfig  `mapstructure:"preview"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CORSAllowOrigins lists the origins allowed to call the API with
	// credentials. "*" allows any origin.
	CORSAllowOrigins       []string `mapstructure:"cors_allow_origins"`
	ReadTimeoutSeconds     int      `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds    int      `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	ShutdownTimeoutSeconds int      `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ReadTimeout returns the read timeout as a duration.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout returns the write timeout as a duration.
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// URL is a PostgreSQL connection string, or a "sqlite:" / "file:" URL
	// selecting the embedded SQLite backend.
	URL string `mapstructure:"url" validate:"required_unless=ForceLocal true"`
	// ForceLocal ignores URL and uses the SQLite file at LocalPath.
	ForceLocal   bool   `mapstructure:"force_local"`
	LocalPath    string `mapstructure:"local_path" validate:"required"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
}

// UsesSQLite reports whether the configuration selects the SQLite backend.
func (c DatabaseConfig) UsesSQLite() bool {
	if c.ForceLocal {
		return true
	}
	url := strings.ToLower(c.URL)
	return strings.HasPrefix(url, "sqlite:") || strings.HasPrefix(url, "file:")
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	BCryptCost int `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
}

// PreviewConfig controls seeding of demo data at startup.
type PreviewConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
