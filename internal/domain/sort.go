package domain

import (
	"sort"

	"github.com/riordanpawley/aurora/internal/calendar"
)

// SortField represents a field to sort by
type SortField string

const (
	SortByCreated  SortField = "created"
	SortByDue      SortField = "due"
	SortByPriority SortField = "priority"
)

// SortOrder represents sort direction
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// Sort represents sorting state
type Sort struct {
	Field SortField
	Order SortOrder
}

// DefaultSort is the board's column order
var DefaultSort = Sort{Field: SortByCreated, Order: SortDesc}

// Toggle toggles the sort field or direction
// If field is different, sets new field with ascending order
// If field is same, toggles between ascending and descending
func (s *Sort) Toggle(field SortField) {
	if s.Field == field {
		if s.Order == SortAsc {
			s.Order = SortDesc
		} else {
			s.Order = SortAsc
		}
	} else {
		s.Field = field
		s.Order = SortAsc
	}
}

// Apply sorts a copy of tasks. Equal keys fall back to CreatedAt descending
// and then ID so the order is deterministic.
func (s Sort) Apply(tasks []Task) []Task {
	if len(tasks) == 0 {
		return tasks
	}

	result := make([]Task, len(tasks))
	copy(result, tasks)

	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if c := s.compare(a, b); c != 0 {
			if s.Order == SortAsc {
				return c < 0
			}
			return c > 0
		}
		return newestFirst(a, b)
	})
	return result
}

func (s Sort) compare(a, b Task) int {
	switch s.Field {
	case SortByPriority:
		return a.Priority.Rank() - b.Priority.Rank()
	case SortByDue:
		da, db := calendar.ParseISO(a.NextDue), calendar.ParseISO(b.NextDue)
		switch {
		case !da.Valid() && !db.Valid():
			return 0
		case !da.Valid():
			return 1
		case !db.Valid():
			return -1
		}
		return da.Compare(db)
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

// SortNewestFirst orders tasks by CreatedAt descending, ties by ID
func SortNewestFirst(tasks []Task) []Task {
	return DefaultSort.Apply(tasks)
}

func newestFirst(a, b Task) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}
