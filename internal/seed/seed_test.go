package seed_test

import (
	"context"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/seed"
	"github.com/phrazzld/taskboard-api/internal/service/auth"
	"github.com/phrazzld/taskboard-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPreviewData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.OpenTestDB(t)
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	stores := testutils.CreateTestStores(db)

	seeded, err := seed.PreviewData(ctx, db, hasher, nil)
	require.NoError(t, err)
	assert.True(t, seeded)

	user, err := stores.UserStore.GetByEmail(ctx, seed.DemoEmail)
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(user.HashedPassword, seed.DemoPassword))
	require.NotNil(t, user.RoleID)

	role, err := stores.RoleStore.GetByID(ctx, *user.RoleID)
	require.NoError(t, err)
	assert.Equal(t, "employee", role.Name)
	_, err = stores.RoleStore.GetByName(ctx, "admin")
	assert.NoError(t, err)

	emp, err := stores.EmployeeStore.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, seed.DemoEmployeeCode, emp.EmployeeCode)
	assert.Equal(t, seed.DemoEmployeeName, emp.Name)

	dept, err := stores.DepartmentStore.GetByName(ctx, seed.DemoDepartment)
	require.NoError(t, err)
	require.NotNil(t, emp.DepartmentID)
	assert.Equal(t, dept.ID, *emp.DepartmentID)

	again, err := seed.PreviewData(ctx, db, hasher, nil)
	require.NoError(t, err)
	assert.False(t, again, "seeding twice is a no-op")

	n, err := stores.UserStore.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPreviewData_SkipsPopulatedDatabase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := testutils.OpenTestDB(t)
	stores := testutils.CreateTestStores(db)
	testutils.MustInsertUser(ctx, t, stores, "existing@example.com")

	seeded, err := seed.PreviewData(ctx, db, auth.NewBcryptHasher(bcrypt.MinCost), nil)
	require.NoError(t, err)
	assert.False(t, seeded)

	_, err = stores.UserStore.GetByEmail(ctx, seed.DemoEmail)
	assert.Error(t, err)
}
