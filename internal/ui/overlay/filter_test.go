package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMenu_PrioritySubmenu(t *testing.T) {
	f := domain.NewFilter()
	m := NewFilterMenu(f, nil)

	m.Update(runeKey("p"))
	assert.Equal(t, "Filter: Priority", m.Title())

	m.Update(runeKey("h"))
	assert.True(t, f.Priority[domain.PriorityHigh])
	assert.Equal(t, "Filter", m.Title(), "submenu returns after one toggle")

	m.Update(runeKey("p"))
	m.Update(runeKey("h"))
	assert.False(t, f.Priority[domain.PriorityHigh])
}

func TestFilterMenu_TagSubmenu(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		key     string
		wantTag string
	}{
		{"pick first", "", "1", "home"},
		{"pick second", "", "2", "work"},
		{"zero clears", "work", "0", ""},
		{"out of range ignored", "home", "5", "home"},
		{"non digit ignored", "home", "z", "home"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.NewFilter()
			f.Tag = tt.start
			m := NewFilterMenu(f, []string{"home", "work"})

			m.Update(runeKey("t"))
			m.Update(runeKey(tt.key))

			assert.Equal(t, tt.wantTag, f.Tag)
			assert.Equal(t, "Filter", m.Title())
		})
	}
}

func TestFilterMenu_ToggleCompletedAndClear(t *testing.T) {
	f := domain.NewFilter()
	f.Tag = "work"
	m := NewFilterMenu(f, []string{"work"})

	m.Update(runeKey("x"))
	assert.False(t, f.ShowCompleted)
	assert.True(t, f.IsActive())

	m.Update(runeKey("c"))
	assert.False(t, f.IsActive())
	assert.Empty(t, f.Tag)
}

func TestFilterMenu_Close(t *testing.T) {
	m := NewFilterMenu(domain.NewFilter(), nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(CloseOverlayMsg)
	assert.True(t, ok)
}

func TestFilterMenu_View(t *testing.T) {
	f := domain.NewFilter()
	f.Query = "rent"
	f.Tag = "home"
	f.Priority[domain.PriorityHigh] = true
	m := NewFilterMenu(f, []string{"home", "work"})

	view := m.View()
	assert.Contains(t, view, "Priority")
	assert.Contains(t, view, "high")
	assert.Contains(t, view, "#home")
	assert.Contains(t, view, `search: "rent"`)

	m.Update(runeKey("t"))
	view = m.View()
	assert.Contains(t, view, "All tags")
	assert.Contains(t, view, "#work")

	w, h := m.Size()
	assert.Equal(t, 50, w)
	assert.Equal(t, 10, h)
}

func TestFilterMenu_TagOverflow(t *testing.T) {
	tags := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}
	m := NewFilterMenu(domain.NewFilter(), tags)

	m.Update(runeKey("t"))
	assert.Contains(t, m.View(), "+2 more")
}
