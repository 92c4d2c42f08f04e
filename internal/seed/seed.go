// Package seed populates an empty database with demo data for preview
// deployments.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Demo account created by PreviewData.
const (
	DemoEmail        = "demo@example.com"
	DemoPassword     = "demo"
	DemoEmployeeCode = "E001"
	DemoEmployeeName = "Demo User"
	DemoDepartment   = "General"
)

// Roles created by PreviewData. New demo users get the first one.
var Roles = []string{"employee", "admin"}

// PreviewData creates the preview roles, department, demo user and its
// employee record in one transaction. It does nothing when any user
// exists, and reports whether data was written.
func PreviewData(ctx context.Context, db *sql.DB, hasher auth.PasswordHasher, l *slog.Logger) (bool, error) {
	if l == nil {
		l = slog.Default()
	}
	log := logger.FromContextOrDefault(ctx, l).With(slog.String("component", "seed"))

	seeded := false
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		users := postgres.NewPostgresUserStore(tx, log)
		roles := postgres.NewPostgresRoleStore(tx, log)

		n, err := users.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info("database already has users, skipping preview seed", slog.Int("users", n))
			return nil
		}

		var employeeRole *domain.Role
		for _, name := range Roles {
			role, err := ensureRole(ctx, roles, name)
			if err != nil {
				return err
			}
			if employeeRole == nil {
				employeeRole = role
			}
		}

		dept, err := ensureDepartment(ctx, postgres.NewPostgresDepartmentStore(tx, log), DemoDepartment)
		if err != nil {
			return err
		}

		userService := service.NewUserService(users, roles, hasher, nil, log)
		user, err := userService.CreateUser(ctx, DemoEmail, DemoPassword, &employeeRole.ID)
		if err != nil {
			return err
		}

		emp, err := domain.NewEmployee(user.ID, DemoEmployeeCode, DemoEmployeeName, &dept.ID)
		if err != nil {
			return err
		}
		if err := postgres.NewPostgresEmployeeStore(tx, log).Create(ctx, emp); err != nil {
			return err
		}

		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to seed preview data: %w", err)
	}

	if seeded {
		log.Info("preview data seeded", slog.String("email", DemoEmail))
	}
	return seeded, nil
}

func ensureRole(ctx context.Context, roles store.RoleStore, name string) (*domain.Role, error) {
	role, err := roles.GetByName(ctx, name)
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, store.ErrRoleNotFound) {
		return nil, err
	}

	role, err = domain.NewRole(name)
	if err != nil {
		return nil, err
	}
	if err := roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

func ensureDepartment(ctx context.Context, depts store.DepartmentStore, name string) (*domain.Department, error) {
	dept, err := depts.GetByName(ctx, name)
	if err == nil {
		return dept, nil
	}
	if !errors.Is(err, store.ErrDepartmentNotFound) {
		return nil, err
	}

	dept, err = domain.NewDepartment(name)
	if err != nil {
		return nil, err
	}
	if err := depts.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}
