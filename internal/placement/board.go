package placement

import (
	"time"

	"github.com/riordanpawley/aurora/internal/domain"
)

// Board holds tasks bucketed by effective status, each column newest first
type Board struct {
	Columns map[domain.Status][]domain.Task
}

// Group buckets tasks into columns using a single now for the whole batch
func Group(tasks []domain.Task, now time.Time) Board {
	b := Board{Columns: make(map[domain.Status][]domain.Task, len(domain.Statuses))}
	for _, s := range domain.Statuses {
		b.Columns[s] = nil
	}
	for _, t := range domain.SortNewestFirst(tasks) {
		s := EffectiveStatus(t, now)
		if _, ok := b.Columns[s]; !ok {
			s = domain.StatusToday
		}
		b.Columns[s] = append(b.Columns[s], t)
	}
	return b
}

// Column returns the tasks in s
func (b Board) Column(s domain.Status) []domain.Task {
	return b.Columns[s]
}

// Counts returns the task count per column in board order
func (b Board) Counts() []int {
	out := make([]int, len(domain.Statuses))
	for i, s := range domain.Statuses {
		out[i] = len(b.Columns[s])
	}
	return out
}

// Len returns the total number of tasks on the board
func (b Board) Len() int {
	n := 0
	for _, tasks := range b.Columns {
		n += len(tasks)
	}
	return n
}
