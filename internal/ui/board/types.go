package board

import (
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/placement"
)

// Column represents a kanban column with tasks
type Column struct {
	Status domain.Status
	Title  string
	Tasks  []domain.Task
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index (0-3)
	Task   int // Task index within column
}

// FromBoard converts a grouped board into columns in board order, passing
// each column through order (nil keeps the grouped order).
func FromBoard(b placement.Board, order func([]domain.Task) []domain.Task) []Column {
	cols := make([]Column, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		tasks := b.Column(s)
		if order != nil {
			tasks = order(tasks)
		}
		cols = append(cols, Column{Status: s, Title: s.Title(), Tasks: tasks})
	}
	return cols
}
