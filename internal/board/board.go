// Package board is the local kanban model: columns of ordered tasks with
// drag-and-drop style reordering. It has no data dependency on the event
// store and is never persisted remotely.
package board

import (
	"time"

	"github.com/google/uuid"

	"github.com/agentcal/core/internal/domain/entities"
)

// Board holds the kanban columns. Operations mirror the allowed UI
// gestures; there is no partial-failure state, every operation either
// mutates the board or reports why it could not.
type Board struct {
	columns []entities.TaskColumn
	now     func() time.Time
}

// New builds a board with the standard three lanes. A nil clock defaults to
// time.Now.
func New(now func() time.Time) *Board {
	if now == nil {
		now = time.Now
	}
	b := &Board{now: now}
	for i, lane := range []struct{ title, color string }{
		{"To Do", "#ef4444"},
		{"In Progress", "#f59e0b"},
		{"Done", "#10b981"},
	} {
		b.columns = append(b.columns, entities.TaskColumn{
			ID:    uuid.NewString(),
			Title: lane.title,
			Color: lane.color,
			Order: i,
		})
	}
	return b
}

// Columns returns a copy of the column list in array order.
func (b *Board) Columns() []entities.TaskColumn {
	out := make([]entities.TaskColumn, len(b.columns))
	copy(out, b.columns)
	for i := range out {
		tasks := make([]entities.Task, len(b.columns[i].Tasks))
		copy(tasks, b.columns[i].Tasks)
		out[i].Tasks = tasks
	}
	return out
}

// AddColumn appends a new column whose order equals the current column
// count.
func (b *Board) AddColumn(title string) entities.TaskColumn {
	col := entities.TaskColumn{
		ID:    uuid.NewString(),
		Title: title,
		Color: "#3b82f6",
		Order: len(b.columns),
	}
	b.columns = append(b.columns, col)
	return col
}

// DeleteColumn removes a column and its tasks. Remaining columns keep their
// order values; gaps are permitted.
func (b *Board) DeleteColumn(id string) error {
	for i, col := range b.columns {
		if col.ID == id {
			b.columns = append(b.columns[:i], b.columns[i+1:]...)
			return nil
		}
	}
	return entities.ErrColumnNotFound
}

// AddTask appends a task to the given column with order equal to that
// column's current task count.
func (b *Board) AddTask(columnID, title string) (entities.Task, error) {
	col := b.column(columnID)
	if col == nil {
		return entities.Task{}, entities.ErrColumnNotFound
	}
	task := entities.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Priority:  entities.TaskPriorityMedium,
		Status:    entities.TaskStatusTodo,
		Tags:      []string{},
		CreatedAt: b.now(),
		Order:     len(col.Tasks),
	}
	col.Tasks = append(col.Tasks, task)
	return task, nil
}

// DeleteTask removes a task by id within the given column.
func (b *Board) DeleteTask(columnID, taskID string) error {
	col := b.column(columnID)
	if col == nil {
		return entities.ErrColumnNotFound
	}
	for i, t := range col.Tasks {
		if t.ID == taskID {
			col.Tasks = append(col.Tasks[:i], col.Tasks[i+1:]...)
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

// MoveTask removes the task from the source column and appends the same
// task value to the destination column. Append-at-end semantics; the task's
// fields are carried over unchanged.
func (b *Board) MoveTask(taskID, fromColumnID, toColumnID string) error {
	from := b.column(fromColumnID)
	to := b.column(toColumnID)
	if from == nil || to == nil {
		return entities.ErrColumnNotFound
	}
	for i, t := range from.Tasks {
		if t.ID == taskID {
			from.Tasks = append(from.Tasks[:i], from.Tasks[i+1:]...)
			to.Tasks = append(to.Tasks, t)
			return nil
		}
	}
	return entities.ErrTaskNotFound
}

// ReorderColumns removes the dragged column and reinserts it at the target
// column's index, then renumbers every column's order to match the new
// array position. Dropping a column onto itself is a no-op.
func (b *Board) ReorderColumns(draggedID, targetID string) error {
	if draggedID == targetID {
		return nil
	}
	draggedIdx, targetIdx := -1, -1
	for i, col := range b.columns {
		switch col.ID {
		case draggedID:
			draggedIdx = i
		case targetID:
			targetIdx = i
		}
	}
	if draggedIdx < 0 || targetIdx < 0 {
		return entities.ErrColumnNotFound
	}

	dragged := b.columns[draggedIdx]
	b.columns = append(b.columns[:draggedIdx], b.columns[draggedIdx+1:]...)
	// Target index is resolved against the original array, matching the
	// drop position the user saw.
	b.columns = append(b.columns, entities.TaskColumn{})
	copy(b.columns[targetIdx+1:], b.columns[targetIdx:])
	b.columns[targetIdx] = dragged

	for i := range b.columns {
		b.columns[i].Order = i
	}
	return nil
}

func (b *Board) column(id string) *entities.TaskColumn {
	for i := range b.columns {
		if b.columns[i].ID == id {
			return &b.columns[i]
		}
	}
	return nil
}
