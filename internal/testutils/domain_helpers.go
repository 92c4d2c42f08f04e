package testutils

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plain-text password of users created by MustInsertUser.
const TestPassword = "password123"

// MustInsertUser inserts a user with TestPassword hashed at the minimum
// bcrypt cost.
func MustInsertUser(ctx context.Context, t *testing.T, stores TestStores, email string) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err, "Failed to hash test password")

	user, err := domain.NewUser(email, string(hash), nil)
	require.NoError(t, err, "Failed to build test user")
	require.NoError(t, stores.UserStore.Create(ctx, user), "Failed to insert test user")

	return user
}

// MustInsertEmployee inserts a user with the given email and an employee
// record linked to it.
func MustInsertEmployee(ctx context.Context, t *testing.T, stores TestStores, email string) *domain.Employee {
	t.Helper()

	user := MustInsertUser(ctx, t, stores, email)
	emp, err := domain.NewEmployee(user.ID, fmt.Sprintf("E-%s", user.ID.String()[:8]), "Test Employee", nil)
	require.NoError(t, err, "Failed to build test employee")
	require.NoError(t, stores.EmployeeStore.Create(ctx, emp), "Failed to insert test employee")

	return emp
}

// MustInsertTask inserts a single task row under parentID (nil for a root).
func MustInsertTask(
	ctx context.Context,
	t *testing.T,
	stores TestStores,
	title string,
	parentID *uuid.UUID,
	position int,
) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(domain.TaskSpec{Title: title, Priority: 3}, parentID, position)
	require.NoError(t, err, "Failed to build test task")
	require.NoError(t, stores.TaskStore.Create(ctx, task), "Failed to insert test task")

	return task
}

// NewTestAttendance builds a valid attendance for the day: 09:00 to 17:00
// with a 60 minute break. It is not saved.
func NewTestAttendance(t *testing.T, employeeID uuid.UUID, day time.Time) *domain.Attendance {
	t.Helper()

	day = domain.TruncateDate(day)
	att, err := domain.NewAttendance(
		employeeID,
		day,
		day.Add(9*time.Hour),
		day.Add(17*time.Hour),
		60,
		nil,
	)
	require.NoError(t, err, "Failed to build test attendance")

	return att
}
