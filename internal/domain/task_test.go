package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestNewTask(t *testing.T) {
	t.Parallel()

	due := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	parentID := uuid.New()
	spec := TaskSpec{
		Title:       "Write report",
		Description: strPtr("quarterly"),
		DueDate:     &due,
		Priority:    1,
		Completed:   true,
	}

	task, err := NewTask(spec, &parentID, 2)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if task.ParentID == nil || *task.ParentID != parentID {
		t.Errorf("Expected parent %s, got %v", parentID, task.ParentID)
	}
	if task.Position != 2 {
		t.Errorf("Expected position 2, got %d", task.Position)
	}
	if task.Title != "Write report" || *task.Description != "quarterly" {
		t.Errorf("Unexpected scalar fields: %+v", task)
	}
	if task.DueDate == nil || !task.DueDate.Equal(due) || task.DueDate.Location() != time.UTC {
		t.Errorf("Expected due date normalized to UTC, got %v", task.DueDate)
	}
	if task.Priority != 1 || !task.Completed {
		t.Errorf("Expected priority 1 and completed, got %d/%v", task.Priority, task.Completed)
	}
}

func TestNewTaskRejectsBlankTitle(t *testing.T) {
	t.Parallel()

	_, err := NewTask(TaskSpec{Title: "   "}, nil, 0)
	if !errors.Is(err, ErrEmptyTaskTitle) {
		t.Fatalf("Expected ErrEmptyTaskTitle, got %v", err)
	}
}

func TestTaskSpecValidateReportsNestedPath(t *testing.T) {
	t.Parallel()

	spec := TaskSpec{
		Title: "Main",
		SubTasks: []TaskSpec{
			{Title: "Sub1"},
			{Title: "Sub2", SubTasks: []TaskSpec{{Title: ""}}},
		},
	}

	err := spec.Validate()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if vErr.Field != "sub_tasks[1].sub_tasks[0].title" {
		t.Errorf("Unexpected field path %q", vErr.Field)
	}
	if !errors.Is(err, ErrEmptyTaskTitle) {
		t.Errorf("Expected error to wrap ErrEmptyTaskTitle")
	}
	if spec.Count() != 4 {
		t.Errorf("Expected 4 nodes, got %d", spec.Count())
	}
}

func TestApplySpecKeepsIdentity(t *testing.T) {
	t.Parallel()

	task, err := NewTask(TaskSpec{Title: "Old", Priority: 3}, nil, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	id := task.ID
	created := task.CreatedAt

	if err := task.ApplySpec(TaskSpec{Title: "New", Priority: 5, Completed: true}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.ID != id || !task.CreatedAt.Equal(created) {
		t.Error("ApplySpec must not change identity or creation time")
	}
	if task.Title != "New" || task.Priority != 5 || !task.Completed || task.Description != nil {
		t.Errorf("Unexpected fields after ApplySpec: %+v", task)
	}

	if err := task.ApplySpec(TaskSpec{Title: ""}); err == nil {
		t.Fatal("Expected validation error for blank title")
	}
	if task.Title != "New" {
		t.Errorf("Failed ApplySpec must leave task unchanged, got title %q", task.Title)
	}
}

func TestTaskTraversal(t *testing.T) {
	t.Parallel()

	leaf1 := &Task{Title: "leaf1"}
	leaf2 := &Task{Title: "leaf2"}
	mid := &Task{Title: "mid", SubTasks: []*Task{leaf1}}
	root := &Task{Title: "root", SubTasks: []*Task{mid, leaf2}}

	var pre []string
	root.Walk(func(t *Task) { pre = append(pre, t.Title) })

	var post []string
	_ = root.PostOrder(func(t *Task) error {
		post = append(post, t.Title)
		return nil
	})

	wantPre := []string{"root", "mid", "leaf1", "leaf2"}
	wantPost := []string{"leaf1", "mid", "leaf2", "root"}
	for i := range wantPre {
		if pre[i] != wantPre[i] {
			t.Errorf("pre-order[%d] = %s, want %s", i, pre[i], wantPre[i])
		}
		if post[i] != wantPost[i] {
			t.Errorf("post-order[%d] = %s, want %s", i, post[i], wantPost[i])
		}
	}
	if root.Count() != 4 {
		t.Errorf("Expected 4 tasks, got %d", root.Count())
	}

	stop := errors.New("stop")
	visited := 0
	err := root.PostOrder(func(*Task) error {
		visited++
		return stop
	})
	if !errors.Is(err, stop) || visited != 1 {
		t.Errorf("PostOrder should stop at the first error, visited %d", visited)
	}
}
