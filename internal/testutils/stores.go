package testutils

import (
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TestStores holds every store implementation bound to one connection or
// transaction.
type TestStores struct {
	UserStore       store.UserStore
	RoleStore       store.RoleStore
	DepartmentStore store.DepartmentStore
	EmployeeStore   store.EmployeeStore
	TaskStore       store.TaskStore
	AttendanceStore store.AttendanceStore
}

// CreateTestStores creates all store implementations on db.
func CreateTestStores(db store.DBTX) TestStores {
	logger := slog.Default()

	return TestStores{
		UserStore:       postgres.NewPostgresUserStore(db, logger),
		RoleStore:       postgres.NewPostgresRoleStore(db, logger),
		DepartmentStore: postgres.NewPostgresDepartmentStore(db, logger),
		EmployeeStore:   postgres.NewPostgresEmployeeStore(db, logger),
		TaskStore:       postgres.NewPostgresTaskStore(db, logger),
		AttendanceStore: postgres.NewPostgresAttendanceStore(db, logger),
	}
}
