package domain

import (
	"sort"

	"github.com/google/uuid"
)

// taskArena indexes flat task rows by identifier and groups them by parent so
// trees can be assembled without further queries.
type taskArena struct {
	byID     map[uuid.UUID]*Task
	children map[uuid.UUID][]*Task
	roots    []*Task
}

func newTaskArena(rows []*Task) *taskArena {
	a := &taskArena{
		byID:     make(map[uuid.UUID]*Task, len(rows)),
		children: make(map[uuid.UUID][]*Task),
	}
	for _, row := range rows {
		row.SubTasks = nil
		a.byID[row.ID] = row
	}
	for _, row := range rows {
		if row.ParentID == nil {
			a.roots = append(a.roots, row)
			continue
		}
		a.children[*row.ParentID] = append(a.children[*row.ParentID], row)
	}
	for parent := range a.children {
		sortSiblings(a.children[parent])
	}
	sortRoots(a.roots)
	return a
}

// attach links the children of node recursively. Nodes already seen are
// skipped, so corrupt parent links cannot make assembly loop.
func (a *taskArena) attach(node *Task, seen map[uuid.UUID]bool) {
	seen[node.ID] = true
	for _, child := range a.children[node.ID] {
		if seen[child.ID] {
			continue
		}
		node.SubTasks = append(node.SubTasks, child)
		a.attach(child, seen)
	}
	if node.SubTasks == nil {
		node.SubTasks = []*Task{}
	}
}

// BuildTree assembles the subtree rooted at rootID from flat rows. Rows that
// are not descendants of the root are ignored. It reports false when the root
// is not among the rows.
func BuildTree(rows []*Task, rootID uuid.UUID) (*Task, bool) {
	a := newTaskArena(rows)
	root, ok := a.byID[rootID]
	if !ok {
		return nil, false
	}
	a.attach(root, make(map[uuid.UUID]bool, len(rows)))
	return root, true
}

// BuildForest assembles every root task (a row without a parent) together
// with its descendants. Roots are ordered by creation time.
func BuildForest(rows []*Task) []*Task {
	a := newTaskArena(rows)
	seen := make(map[uuid.UUID]bool, len(rows))
	forest := make([]*Task, 0, len(a.roots))
	for _, root := range a.roots {
		a.attach(root, seen)
		forest = append(forest, root)
	}
	return forest
}

func sortSiblings(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return lessByCreation(tasks[i], tasks[j])
	})
}

func sortRoots(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return lessByCreation(tasks[i], tasks[j])
	})
}

func lessByCreation(a, b *Task) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}
