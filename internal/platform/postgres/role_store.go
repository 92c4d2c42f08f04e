package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PostgresRoleStore implements the store.RoleStore interface.
type PostgresRoleStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRoleStore creates a new RoleStore backed by db.
func NewPostgresRoleStore(db store.DBTX, logger *slog.Logger) *PostgresRoleStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRoleStore{
		db:     db,
		logger: logger.With(slog.String("component", "role_store")),
	}
}

var _ store.RoleStore = (*PostgresRoleStore)(nil)

// WithTx implements store.RoleStore.WithTx
func (s *PostgresRoleStore) WithTx(tx *sql.Tx) store.RoleStore {
	return &PostgresRoleStore{db: tx, logger: s.logger}
}

// Create implements store.RoleStore.Create
func (s *PostgresRoleStore) Create(ctx context.Context, role *domain.Role) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO roles (id, name) VALUES ($1, $2)`, role.ID, role.Name)
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrRoleExists
		}
		log.Error("failed to create role",
			slog.String("error", err.Error()),
			slog.String("role", role.Name))
		return MapError(err)
	}

	log.Debug("role created", slog.String("role", role.Name))
	return nil
}

// GetByID implements store.RoleStore.GetByID
func (s *PostgresRoleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Role, error) {
	return s.getOne(ctx, `WHERE id = $1`, id)
}

// GetByName implements store.RoleStore.GetByName
func (s *PostgresRoleStore) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return s.getOne(ctx, `WHERE name = $1`, name)
}

func (s *PostgresRoleStore) getOne(ctx context.Context, where string, arg any) (*domain.Role, error) {
	var role domain.Role
	err := s.db.QueryRowContext(ctx, `SELECT id, name FROM roles `+where, arg).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrRoleNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get role",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	return &role, nil
}
