package domain

import (
	"testing"
	"time"
)

func TestSort_Toggle(t *testing.T) {
	tests := []struct {
		name      string
		initial   Sort
		toggleTo  SortField
		wantField SortField
		wantOrder SortOrder
	}{
		{
			name:      "toggle to new field sets asc",
			initial:   Sort{Field: SortByPriority, Order: SortDesc},
			toggleTo:  SortByDue,
			wantField: SortByDue,
			wantOrder: SortAsc,
		},
		{
			name:      "toggle same field asc to desc",
			initial:   Sort{Field: SortByPriority, Order: SortAsc},
			toggleTo:  SortByPriority,
			wantField: SortByPriority,
			wantOrder: SortDesc,
		},
		{
			name:      "toggle same field desc to asc",
			initial:   Sort{Field: SortByPriority, Order: SortDesc},
			toggleTo:  SortByPriority,
			wantField: SortByPriority,
			wantOrder: SortAsc,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.initial
			s.Toggle(tt.toggleTo)

			if s.Field != tt.wantField {
				t.Errorf("Toggle() field = %v, want %v", s.Field, tt.wantField)
			}
			if s.Order != tt.wantOrder {
				t.Errorf("Toggle() order = %v, want %v", s.Order, tt.wantOrder)
			}
		})
	}
}

func TestSortNewestFirst(t *testing.T) {
	base := time.Date(2024, time.April, 1, 9, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: "b", CreatedAt: base},
		{ID: "c", CreatedAt: base.Add(time.Hour)},
		{ID: "a", CreatedAt: base},
		{ID: "d", CreatedAt: base.Add(-time.Hour)},
	}

	got := SortNewestFirst(tasks)
	want := []string{"c", "a", "b", "d"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("SortNewestFirst()[%d] = %v, want %v", i, got[i].ID, id)
		}
	}
	if tasks[0].ID != "b" {
		t.Error("SortNewestFirst() modified its input")
	}
}

func TestSort_Apply_Priority(t *testing.T) {
	tasks := []Task{
		{ID: "t-1", Priority: PriorityMedium},
		{ID: "t-2", Priority: PriorityHigh},
		{ID: "t-3", Priority: PriorityLow},
		{ID: "t-4", Priority: PriorityHigh},
	}

	s := Sort{Field: SortByPriority, Order: SortDesc}
	got := s.Apply(tasks)
	want := []string{"t-2", "t-4", "t-1", "t-3"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Apply()[%d] = %v, want %v", i, got[i].ID, id)
		}
	}
}

func TestSort_Apply_DueInvalidLast(t *testing.T) {
	tasks := []Task{
		{ID: "none"},
		{ID: "late", NextDue: "2024-05-01"},
		{ID: "early", NextDue: "2024-04-01"},
	}

	s := Sort{Field: SortByDue, Order: SortAsc}
	got := s.Apply(tasks)
	want := []string{"early", "late", "none"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Apply()[%d] = %v, want %v", i, got[i].ID, id)
		}
	}
}

func TestSort_Apply_Empty(t *testing.T) {
	if got := DefaultSort.Apply(nil); got != nil {
		t.Errorf("Apply(nil) = %v, want nil", got)
	}
}
