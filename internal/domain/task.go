package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTaskPriority is applied when a task specification omits a priority.
const DefaultTaskPriority = 3

// Common validation errors for Task
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle = errors.New("task title cannot be empty")
	ErrSelfParent     = errors.New("task cannot be its own parent")
)

// Task is a node of the task forest. It is persisted as a flat row linked to
// its parent by ParentID and presented to callers as a nested tree through
// SubTasks.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	ParentID    *uuid.UUID `json:"-"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Priority    int        `json:"priority"`
	Completed   bool       `json:"completed"`
	// Position orders a task among its siblings.
	Position  int       `json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	SubTasks  []*Task   `json:"sub_tasks"`
}

// TaskSpec describes a task to create or the replacement content of an
// existing one, including the ordered specifications of its children.
type TaskSpec struct {
	Title       string
	Description *string
	DueDate     *time.Time
	Priority    int
	Completed   bool
	SubTasks    []TaskSpec
}

// Validate checks the specification and all nested child specifications.
// The returned ValidationError names the offending field by its path,
// e.g. "sub_tasks[1].title".
func (s TaskSpec) Validate() error {
	return s.validate("")
}

func (s TaskSpec) validate(prefix string) error {
	if strings.TrimSpace(s.Title) == "" {
		return NewValidationError(prefix+"title", "cannot be empty", ErrEmptyTaskTitle)
	}
	for i, child := range s.SubTasks {
		if err := child.validate(fmt.Sprintf("%ssub_tasks[%d].", prefix, i)); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of nodes described by the specification,
// including itself.
func (s TaskSpec) Count() int {
	n := 1
	for _, child := range s.SubTasks {
		n += child.Count()
	}
	return n
}

// NewTask creates a single task node from spec, without children. The node
// gets a fresh ID and is attached to parentID (nil for a root) at the given
// sibling position.
func NewTask(spec TaskSpec, parentID *uuid.UUID, position int) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:        uuid.New(),
		ParentID:  parentID,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	}
	task.apply(spec)

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid scalar data. Children are not
// inspected.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTaskTitle)
	}
	if t.ParentID != nil && *t.ParentID == t.ID {
		return ErrSelfParent
	}
	return nil
}

// ApplySpec overwrites the scalar fields of the task with those of spec and
// bumps UpdatedAt. Identity, parent and children are left untouched.
func (t *Task) ApplySpec(spec TaskSpec) error {
	previous := *t
	t.apply(spec)
	t.UpdatedAt = time.Now().UTC()

	if err := t.Validate(); err != nil {
		*t = previous
		return err
	}
	return nil
}

func (t *Task) apply(spec TaskSpec) {
	t.Title = spec.Title
	t.Description = spec.Description
	t.DueDate = nil
	if spec.DueDate != nil {
		due := spec.DueDate.UTC()
		t.DueDate = &due
	}
	t.Priority = spec.Priority
	t.Completed = spec.Completed
}

// Walk visits the task and all of its descendants in pre-order.
func (t *Task) Walk(fn func(*Task)) {
	fn(t)
	for _, child := range t.SubTasks {
		child.Walk(fn)
	}
}

// PostOrder visits all descendants before the task itself. It stops at the
// first error returned by fn.
func (t *Task) PostOrder(fn func(*Task) error) error {
	for _, child := range t.SubTasks {
		if err := child.PostOrder(fn); err != nil {
			return err
		}
	}
	return fn(t)
}

// Count returns the number of tasks in the subtree rooted at t.
func (t *Task) Count() int {
	n := 0
	t.Walk(func(*Task) { n++ })
	return n
}
