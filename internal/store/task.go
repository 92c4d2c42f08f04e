package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Tasks are stored as flat rows linked by ParentID. Assembling rows into
// trees is left to the caller (see domain.BuildTree and domain.BuildForest).
// Operations that touch several rows, such as creating a tree or deleting a
// subtree, MUST run through WithTx inside store.RunInTransaction.
type TaskStore interface {
	// Create inserts a single task row. The parent, if any, must already exist.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the parent does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a single task row without its children.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetSubtree retrieves the task identified by rootID together with all of
	// its descendants as flat rows, using a single query.
	// Returns ErrTaskNotFound if the root does not exist.
	GetSubtree(ctx context.Context, rootID uuid.UUID) ([]*domain.Task, error)

	// ListAll retrieves every task row.
	ListAll(ctx context.Context) ([]*domain.Task, error)

	// Update overwrites the scalar fields of an existing task.
	// Parent and position are not changed.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a single task row. Children must be deleted first.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
