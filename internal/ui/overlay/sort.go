package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/domain"
)

// SortOption represents a sort option with metadata
type SortOption struct {
	Key         string
	Label       string
	Field       domain.SortField
	Description string
}

// SortMenu is a menu overlay for ordering tasks inside each column
type SortMenu struct {
	sort    *domain.Sort
	options []SortOption
	styles  *Styles
}

// NewSortMenu creates a new sort menu for the given sort state
func NewSortMenu(sort *domain.Sort) *SortMenu {
	return &SortMenu{
		sort:   sort,
		styles: New(),
		options: []SortOption{
			{Key: "c", Label: "Created", Field: domain.SortByCreated, Description: "creation time"},
			{Key: "d", Label: "Due", Field: domain.SortByDue, Description: "next due date, undated last"},
			{Key: "p", Label: "Priority", Field: domain.SortByPriority, Description: "low to high"},
		},
	}
}

// Init initializes the menu
func (m *SortMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *SortMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "q":
		return m, closeOverlay
	case "r":
		*m.sort = domain.DefaultSort
		return m, selection("sort", *m.sort)
	}

	for _, opt := range m.options {
		if opt.Key == key.String() {
			// same key flips direction
			m.sort.Toggle(opt.Field)
			return m, selection("sort", *m.sort)
		}
	}
	return m, nil
}

// View renders the menu
func (m *SortMenu) View() string {
	var b strings.Builder

	for _, opt := range m.options {
		isActive := m.sort.Field == opt.Field

		keyStyle, labelStyle := m.styles.MenuItem, m.styles.MenuItem
		if isActive {
			keyStyle, labelStyle = m.styles.MenuKey, m.styles.MenuItemActive
		}

		b.WriteString(keyStyle.Render("[" + opt.Key + "]"))
		b.WriteString(" ")
		b.WriteString(labelStyle.Render(opt.Label))
		b.WriteString(" ")
		b.WriteString(m.styles.MenuItemDisabled.Render("(" + opt.Description + ")"))

		if isActive {
			arrow := "↑"
			if m.sort.Order == domain.SortDesc {
				arrow = "↓"
			}
			b.WriteString(" ")
			b.WriteString(m.styles.MenuItemActive.Render("● " + arrow))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("Same key toggles direction • r: reset • Esc: close"))
	return b.String()
}

// Title returns the overlay title
func (m *SortMenu) Title() string {
	return "Sort"
}

// Size returns the overlay dimensions
func (m *SortMenu) Size() (width, height int) {
	return 60, len(m.options) + 5
}
