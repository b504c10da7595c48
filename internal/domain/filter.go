package domain

import (
	"slices"
	"strings"
)

// Filter represents task filtering state
type Filter struct {
	Query         string
	Tag           string
	Priority      map[Priority]bool
	ShowCompleted bool
}

// NewFilter creates a filter that shows everything
func NewFilter() *Filter {
	return &Filter{
		Priority:      make(map[Priority]bool),
		ShowCompleted: true,
	}
}

// IsActive returns true if any filter narrows the task list
func (f *Filter) IsActive() bool {
	return strings.TrimSpace(f.Query) != "" ||
		f.Tag != "" ||
		len(f.Priority) > 0 ||
		!f.ShowCompleted
}

// Apply filters a list of tasks
func (f *Filter) Apply(tasks []Task) []Task {
	if !f.IsActive() {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Matches returns true if the task passes all active filters
// Uses AND logic between filter kinds, OR logic within priorities
func (f *Filter) Matches(t Task) bool {
	if !f.ShowCompleted && t.IsDone() {
		return false
	}

	if f.Tag != "" && !slices.Contains(t.Tags, f.Tag) {
		return false
	}

	if len(f.Priority) > 0 && !f.Priority[t.Priority] {
		return false
	}

	// Search query (case-insensitive, matches title or notes)
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Notes), q) {
			return false
		}
	}

	return true
}

// Clear resets all filters
func (f *Filter) Clear() {
	f.Query = ""
	f.Tag = ""
	f.Priority = make(map[Priority]bool)
	f.ShowCompleted = true
}

// TogglePriority toggles a priority filter
func (f *Filter) TogglePriority(p Priority) {
	if f.Priority == nil {
		f.Priority = make(map[Priority]bool)
	}
	if f.Priority[p] {
		delete(f.Priority, p)
	} else {
		f.Priority[p] = true
	}
}

// CycleTag advances the tag filter through tags, ending back at "all"
func (f *Filter) CycleTag(tags []string) {
	if len(tags) == 0 {
		f.Tag = ""
		return
	}
	i := slices.Index(tags, f.Tag)
	switch {
	case f.Tag == "":
		f.Tag = tags[0]
	case i < 0 || i == len(tags)-1:
		f.Tag = ""
	default:
		f.Tag = tags[i+1]
	}
}

// AllTags returns every distinct tag across tasks, sorted
func AllTags(tasks []Task) []string {
	seen := make(map[string]bool)
	var out []string
	for _, t := range tasks {
		for _, tag := range t.Tags {
			if tag != "" && !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	slices.Sort(out)
	return out
}
