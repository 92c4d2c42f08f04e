package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskService manages task trees. Every operation runs in a single
// transaction, so a tree is never observed half written.
type TaskService interface {
	// CreateTask persists spec and all nested specifications as a new tree
	// and returns it with every assigned ID.
	CreateTask(ctx context.Context, spec domain.TaskSpec) (*domain.Task, error)

	// GetTask returns the task with its complete subtree.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListTasks returns every root task with its complete subtree.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// UpdateTask overwrites the fields of the task and replaces its whole
	// subtree with the children described by spec. Replaced children are
	// recreated with new IDs.
	UpdateTask(ctx context.Context, id uuid.UUID, spec domain.TaskSpec) (*domain.Task, error)

	// DeleteTask removes the task and all of its descendants.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	db     *sql.DB
	logger *slog.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(tasks store.TaskStore, db *sql.DB, logger *slog.Logger) TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &taskServiceImpl{
		tasks:  tasks,
		db:     db,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, spec domain.TaskSpec) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := spec.Validate(); err != nil {
		log.Debug("rejected invalid task specification", slog.String("error", err.Error()))
		return nil, err
	}

	var root *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		root, err = insertTree(ctx, s.tasks.WithTx(tx), spec, nil, 0)
		return err
	})
	if err != nil {
		log.Error("failed to create task tree", slog.String("error", err.Error()))
		return nil, NewServiceError("task", "create", err)
	}

	log.Info("task tree created",
		slog.String("task_id", root.ID.String()),
		slog.Int("nodes", root.Count()))
	return root, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var tree *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		tree, err = loadTree(ctx, s.tasks.WithTx(tx), id)
		return err
	})
	if err != nil {
		return nil, NewServiceError("task", "get", err)
	}
	return tree, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	var rows []*domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		rows, err = s.tasks.WithTx(tx).ListAll(ctx)
		return err
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, NewServiceError("task", "list", err)
	}
	return domain.BuildForest(rows), nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	spec domain.TaskSpec,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := spec.Validate(); err != nil {
		log.Debug("rejected invalid task specification",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	var (
		tree    *domain.Task
		removed int
	)
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		var err error
		tree, err = loadTree(ctx, tasks, id)
		if err != nil {
			return err
		}

		if err := tree.ApplySpec(spec); err != nil {
			return err
		}
		if err := tasks.Update(ctx, tree); err != nil {
			return err
		}

		for _, child := range tree.SubTasks {
			removed += child.Count()
			if err := deleteTree(ctx, tasks, child); err != nil {
				return err
			}
		}

		tree.SubTasks = make([]*domain.Task, 0, len(spec.SubTasks))
		for i, childSpec := range spec.SubTasks {
			child, err := insertTree(ctx, tasks, childSpec, &tree.ID, i)
			if err != nil {
				return err
			}
			tree.SubTasks = append(tree.SubTasks, child)
		}
		return nil
	})
	if err != nil {
		log.Warn("failed to update task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("task", "update", err)
	}

	log.Info("task updated",
		slog.String("task_id", id.String()),
		slog.Int("children_removed", removed),
		slog.Int("nodes", tree.Count()))
	return tree, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removed int
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks.WithTx(tx)

		tree, err := loadTree(ctx, tasks, id)
		if err != nil {
			return err
		}
		removed = tree.Count()
		return deleteTree(ctx, tasks, tree)
	})
	if err != nil {
		log.Warn("failed to delete task",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return NewServiceError("task", "delete", err)
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.Int("nodes", removed))
	return nil
}

// insertTree stores spec under parentID in pre-order, so every parent row
// exists before its children reference it.
func insertTree(
	ctx context.Context,
	tasks store.TaskStore,
	spec domain.TaskSpec,
	parentID *uuid.UUID,
	position int,
) (*domain.Task, error) {
	node, err := domain.NewTask(spec, parentID, position)
	if err != nil {
		return nil, err
	}
	if err := tasks.Create(ctx, node); err != nil {
		return nil, err
	}

	node.SubTasks = make([]*domain.Task, 0, len(spec.SubTasks))
	for i, childSpec := range spec.SubTasks {
		child, err := insertTree(ctx, tasks, childSpec, &node.ID, i)
		if err != nil {
			return nil, err
		}
		node.SubTasks = append(node.SubTasks, child)
	}
	return node, nil
}

func loadTree(ctx context.Context, tasks store.TaskStore, id uuid.UUID) (*domain.Task, error) {
	rows, err := tasks.GetSubtree(ctx, id)
	if err != nil {
		return nil, err
	}
	tree, ok := domain.BuildTree(rows, id)
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return tree, nil
}

// deleteTree removes root and its descendants children first.
func deleteTree(ctx context.Context, tasks store.TaskStore, root *domain.Task) error {
	return root.PostOrder(func(node *domain.Task) error {
		return tasks.Delete(ctx, node.ID)
	})
}
