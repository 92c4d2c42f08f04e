package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/database"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/seed"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// application holds the shared dependencies of the server and releases
// them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore       store.UserStore
	roleStore       store.RoleStore
	employeeStore   store.EmployeeStore
	taskStore       store.TaskStore
	attendanceStore store.AttendanceStore

	hasher            *auth.BcryptHasher
	tokens            auth.TokenStore
	userService       service.UserService
	taskService       service.TaskService
	attendanceService service.AttendanceService
}

// newApplication wires stores and services over db. With auto_migrate the
// schema is brought up to date first; with preview enabled an empty
// database is seeded with demo data.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect database.Dialect,
) (*application, error) {
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, dialect, database.CommandUp, logger); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.roleStore = postgres.NewPostgresRoleStore(db, logger)
	app.employeeStore = postgres.NewPostgresEmployeeStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.attendanceStore = postgres.NewPostgresAttendanceStore(db, logger)

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BCryptCost)
	app.tokens = auth.NewMemoryTokenStore(logger)

	app.userService = service.NewUserService(app.userStore, app.roleStore, app.hasher, app.hasher, logger)
	app.taskService = service.NewTaskService(app.taskStore, db, logger)
	app.attendanceService = service.NewAttendanceService(app.attendanceStore, app.employeeStore, db, logger)

	if cfg.Preview.Enabled {
		if _, err := seed.PreviewData(ctx, db, app.hasher, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("application initialized")
	return app, nil
}

// Run serves the API until ctx is canceled, then shuts down gracefully.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases application resources.
func (app *application) cleanup() {
	if app.db != nil {
		closeDB(app.db, app.logger)
	}
}
