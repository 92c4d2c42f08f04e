package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/phrazzld/taskboard-api/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (service.TaskService, store.TaskStore) {
	t.Helper()
	db := testutils.OpenTestDB(t)
	tasks := postgres.NewPostgresTaskStore(db, quietLogger())
	return service.NewTaskService(tasks, db, quietLogger()), tasks
}

func collectIDs(root *domain.Task) []uuid.UUID {
	var ids []uuid.UUID
	root.Walk(func(t *domain.Task) { ids = append(ids, t.ID) })
	return ids
}

// shape renders a tree as nested titles so trees can be compared structurally.
func shape(t *domain.Task) string {
	s := t.Title + "["
	for i, child := range t.SubTasks {
		if i > 0 {
			s += ","
		}
		s += shape(child)
	}
	return s + "]"
}

func TestTaskService_CreateWithChildren(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTaskService(t)

	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("%d children", n), func(t *testing.T) {
			spec := domain.TaskSpec{Title: "Parent", Priority: domain.DefaultTaskPriority}
			for i := 0; i < n; i++ {
				spec.SubTasks = append(spec.SubTasks, domain.TaskSpec{Title: fmt.Sprintf("Child %d", i)})
			}

			created, err := svc.CreateTask(ctx, spec)
			require.NoError(t, err)
			require.Len(t, created.SubTasks, n)

			got, err := svc.GetTask(ctx, created.ID)
			require.NoError(t, err)
			require.Len(t, got.SubTasks, n)
			for i, child := range got.SubTasks {
				assert.Equal(t, fmt.Sprintf("Child %d", i), child.Title)
				assert.Equal(t, created.SubTasks[i].ID, child.ID)
				assert.NotNil(t, child.SubTasks)
				assert.Empty(t, child.SubTasks)
			}
		})
	}
}

func TestTaskService_CreateReadRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTaskService(t)

	desc := "details"
	due := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	spec := domain.TaskSpec{
		Title:       "Main",
		Description: &desc,
		DueDate:     &due,
		Priority:    2,
		SubTasks: []domain.TaskSpec{
			{Title: "Sub1", Priority: 3, SubTasks: []domain.TaskSpec{{Title: "Sub1.a"}, {Title: "Sub1.b"}}},
			{Title: "Sub2", Priority: 3, Completed: true},
		},
	}

	created, err := svc.CreateTask(ctx, spec)
	require.NoError(t, err)
	assert.Equal(t, 5, created.Count())

	got, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, shape(created), shape(got))
	assert.Equal(t, "Main[Sub1[Sub1.a[],Sub1.b[]],Sub2[]]", shape(got))
	assert.Equal(t, collectIDs(created), collectIDs(got))
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))
	assert.Equal(t, "details", *got.Description)
	assert.Equal(t, 2, got.Priority)
	assert.True(t, got.SubTasks[1].Completed)
}

func TestTaskService_CreateRejectsBlankTitleAtDepth(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTaskService(t)

	spec := domain.TaskSpec{
		Title:    "Root",
		SubTasks: []domain.TaskSpec{{Title: "ok"}, {Title: "ok", SubTasks: []domain.TaskSpec{{Title: "  "}}}},
	}

	_, err := svc.CreateTask(ctx, spec)
	require.ErrorIs(t, err, domain.ErrEmptyTaskTitle)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sub_tasks[1].sub_tasks[0].title", verr.Field)

	all, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "nothing is persisted")
}

func TestTaskService_GetMissing(t *testing.T) {
	t.Parallel()

	svc, _ := newTaskService(t)

	_, err := svc.GetTask(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTaskService_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTaskService(t)

	empty, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	first, err := svc.CreateTask(ctx, domain.TaskSpec{Title: "First", SubTasks: []domain.TaskSpec{{Title: "Inner"}}})
	require.NoError(t, err)
	second, err := svc.CreateTask(ctx, domain.TaskSpec{Title: "Second"})
	require.NoError(t, err)

	forest, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, forest, 2, "only roots are listed at the top level")
	assert.Equal(t, first.ID, forest[0].ID)
	assert.Equal(t, second.ID, forest[1].ID)
	assert.Equal(t, "First[Inner[]]", shape(forest[0]))
}

func TestTaskService_UpdateReplacesSubtree(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tasks := newTaskService(t)

	created, err := svc.CreateTask(ctx, domain.TaskSpec{
		Title: "Plan",
		SubTasks: []domain.TaskSpec{
			{Title: "Old1", SubTasks: []domain.TaskSpec{{Title: "Old1.a"}}},
			{Title: "Old2"},
		},
	})
	require.NoError(t, err)
	oldIDs := collectIDs(created)[1:]

	updated, err := svc.UpdateTask(ctx, created.ID, domain.TaskSpec{
		Title:     "Plan v2",
		Priority:  1,
		Completed: true,
		SubTasks:  []domain.TaskSpec{{Title: "Old1"}, {Title: "New"}},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID, "the updated node keeps its ID")
	assert.Equal(t, "Plan v2[Old1[],New[]]", shape(updated))

	for _, id := range oldIDs {
		_, err := tasks.GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrTaskNotFound, "previous children are removed")
	}
	for _, child := range updated.SubTasks {
		assert.NotContains(t, oldIDs, child.ID, "children are recreated with new IDs")
	}

	got, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, shape(updated), shape(got))
	assert.Equal(t, collectIDs(updated), collectIDs(got))
	assert.Equal(t, 1, got.Priority)
	assert.True(t, got.Completed)
}

func TestTaskService_UpdateErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTaskService(t)

	_, err := svc.UpdateTask(ctx, uuid.New(), domain.TaskSpec{Title: "x"})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	created, err := svc.CreateTask(ctx, domain.TaskSpec{Title: "Keep", SubTasks: []domain.TaskSpec{{Title: "Child"}}})
	require.NoError(t, err)

	_, err = svc.UpdateTask(ctx, created.ID, domain.TaskSpec{Title: "Keep", SubTasks: []domain.TaskSpec{{Title: ""}}})
	assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)

	got, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep[Child[]]", shape(got), "a rejected update leaves the tree untouched")
}

func TestTaskService_DeleteRemovesDescendants(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tasks := newTaskService(t)

	created, err := svc.CreateTask(ctx, domain.TaskSpec{
		Title: "Root",
		SubTasks: []domain.TaskSpec{
			{Title: "A", SubTasks: []domain.TaskSpec{{Title: "A.1", SubTasks: []domain.TaskSpec{{Title: "A.1.x"}}}}},
			{Title: "B"},
		},
	})
	require.NoError(t, err)
	survivor, err := svc.CreateTask(ctx, domain.TaskSpec{Title: "Survivor"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.ID))

	for _, id := range collectIDs(created) {
		_, err := tasks.GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	}

	remaining, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, survivor.ID, remaining[0].ID)

	assert.ErrorIs(t, svc.DeleteTask(ctx, created.ID), store.ErrTaskNotFound)
}

func TestTaskService_DeleteChildKeepsParent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTaskService(t)

	created, err := svc.CreateTask(ctx, domain.TaskSpec{
		Title:    "Parent",
		SubTasks: []domain.TaskSpec{{Title: "Drop"}, {Title: "Keep"}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.SubTasks[0].ID))

	got, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Parent[Keep[]]", shape(got))
}

// chainSpec describes a single path of depth levels below the root.
func chainSpec(depth int) domain.TaskSpec {
	spec := domain.TaskSpec{Title: fmt.Sprintf("level-%d", depth)}
	for i := depth - 1; i >= 0; i-- {
		spec = domain.TaskSpec{Title: fmt.Sprintf("level-%d", i), SubTasks: []domain.TaskSpec{spec}}
	}
	return spec
}

func TestTaskService_DeepTree(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, tasks := newTaskService(t)
	const depth = 300

	created, err := svc.CreateTask(ctx, chainSpec(depth))
	require.NoError(t, err)
	require.Equal(t, depth+1, created.Count())

	got, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, depth+1, got.Count())
	assert.Equal(t, collectIDs(created), collectIDs(got))

	updated, err := svc.UpdateTask(ctx, created.ID, chainSpec(2))
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Count())
	for _, id := range collectIDs(created)[1:] {
		_, err := tasks.GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	}

	deep, err := svc.CreateTask(ctx, chainSpec(depth))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteTask(ctx, deep.ID))
	for _, id := range collectIDs(deep) {
		_, err := tasks.GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	}

	remaining, err := svc.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, 3, remaining[0].Count())
}
