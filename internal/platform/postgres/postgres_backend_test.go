package postgres_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against the PostgreSQL database named by
// TASKBOARD_TEST_DATABASE_URL and are skipped without it. Each test works in
// a transaction that is rolled back. PostgreSQL aborts a transaction after a
// failed statement, so a test triggers at most one error and does so last.

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString())
}

func TestPostgres_TaskSubtreeAtDepth(t *testing.T) {
	db := testutils.OpenPostgresTestDB(t)
	ctx := context.Background()

	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		stores := testutils.CreateTestStores(tx)

		root := testutils.MustInsertTask(ctx, t, stores, "level-0", nil, 0)
		parent := root
		for i := 1; i <= 300; i++ {
			parent = testutils.MustInsertTask(ctx, t, stores, fmt.Sprintf("level-%d", i), &parent.ID, 0)
		}
		testutils.MustInsertTask(ctx, t, stores, "sibling", &root.ID, 1)

		rows, err := stores.TaskStore.GetSubtree(ctx, root.ID)
		require.NoError(t, err)
		require.Len(t, rows, 302)

		tree, ok := domain.BuildTree(rows, root.ID)
		require.True(t, ok)
		assert.Equal(t, 302, tree.Count())
		require.Len(t, tree.SubTasks, 2)
		assert.Equal(t, "level-1", tree.SubTasks[0].Title)
		assert.Equal(t, "sibling", tree.SubTasks[1].Title)

		all, err := stores.TaskStore.ListAll(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 302)

		require.NoError(t, tree.PostOrder(func(task *domain.Task) error {
			return stores.TaskStore.Delete(ctx, task.ID)
		}))
		_, err = stores.TaskStore.GetSubtree(ctx, root.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgres_TaskNullableFields(t *testing.T) {
	db := testutils.OpenPostgresTestDB(t)
	ctx := context.Background()

	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		stores := testutils.CreateTestStores(tx)

		desc := "quarterly"
		due := time.Date(2024, 3, 31, 17, 0, 0, 0, time.UTC)
		task, err := domain.NewTask(domain.TaskSpec{
			Title: "Report", Description: &desc, DueDate: &due, Priority: 1,
		}, nil, 0)
		require.NoError(t, err)
		require.NoError(t, stores.TaskStore.Create(ctx, task))

		got, err := stores.TaskStore.GetByID(ctx, task.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Description)
		assert.Equal(t, desc, *got.Description)
		require.NotNil(t, got.DueDate)
		assert.True(t, due.Equal(*got.DueDate))

		bare := testutils.MustInsertTask(ctx, t, stores, "Bare", nil, 0)
		got, err = stores.TaskStore.GetByID(ctx, bare.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.DueDate)
	})
}

func TestPostgres_TaskUnknownParent(t *testing.T) {
	db := testutils.OpenPostgresTestDB(t)

	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		stores := testutils.CreateTestStores(tx)

		parent := uuid.New()
		task, err := domain.NewTask(domain.TaskSpec{Title: "Orphan"}, &parent, 0)
		require.NoError(t, err)

		err = stores.TaskStore.Create(context.Background(), task)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestPostgres_AttendanceByMonth(t *testing.T) {
	db := testutils.OpenPostgresTestDB(t)
	ctx := context.Background()

	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		stores := testutils.CreateTestStores(tx)
		emp := testutils.MustInsertEmployee(ctx, t, stores, uniqueEmail("month"))

		for _, d := range []time.Time{day(2023, 12, 31), day(2024, 1, 1), day(2024, 1, 31), day(2024, 2, 1)} {
			require.NoError(t, stores.AttendanceStore.Create(ctx, testutils.NewTestAttendance(t, emp.ID, d)))
		}

		jan, err := domain.ParseMonth("2024-01")
		require.NoError(t, err)
		records, err := stores.AttendanceStore.ListByEmployee(ctx, emp.ID, &jan)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "2024-01-01", domain.FormatDate(records[0].Date))
		assert.Equal(t, "2024-01-31", domain.FormatDate(records[1].Date))

		all, err := stores.AttendanceStore.ListByEmployee(ctx, emp.ID, nil)
		require.NoError(t, err)
		assert.Len(t, all, 4)

		byDate, err := stores.AttendanceStore.GetByEmployeeAndDate(ctx, emp.ID, day(2024, 1, 31))
		require.NoError(t, err)
		assert.True(t, day(2024, 1, 31).Add(9*time.Hour).Equal(byDate.StartTime))

		require.NoError(t, stores.AttendanceStore.DeleteOwned(ctx, byDate.ID, emp.ID))
		assert.ErrorIs(t, stores.AttendanceStore.DeleteOwned(ctx, byDate.ID, emp.ID), store.ErrAttendanceNotFound)
	})
}

func TestPostgres_AttendanceDuplicateDate(t *testing.T) {
	db := testutils.OpenPostgresTestDB(t)
	ctx := context.Background()

	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		stores := testutils.CreateTestStores(tx)
		emp := testutils.MustInsertEmployee(ctx, t, stores, uniqueEmail("dup"))

		require.NoError(t, stores.AttendanceStore.Create(ctx, testutils.NewTestAttendance(t, emp.ID, day(2024, 1, 15))))

		err := stores.AttendanceStore.Create(ctx, testutils.NewTestAttendance(t, emp.ID, day(2024, 1, 15)))
		assert.ErrorIs(t, err, store.ErrAttendanceExists)
	})
}

func TestPostgres_DuplicateEmail(t *testing.T) {
	db := testutils.OpenPostgresTestDB(t)
	ctx := context.Background()

	testutils.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		stores := testutils.CreateTestStores(tx)
		email := uniqueEmail("taken")
		testutils.MustInsertUser(ctx, t, stores, email)

		user, err := domain.NewUser(email, "hash", nil)
		require.NoError(t, err)
		assert.ErrorIs(t, stores.UserStore.Create(ctx, user), store.ErrEmailExists)
	})
}
