package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/config"
)

// ListSelectedMsg is sent when the user switches to another task list
type ListSelectedMsg struct {
	List config.List
}

// ListSelector is an overlay for switching between registered task lists
type ListSelector struct {
	registry *config.ListsRegistry
	current  string
	save     func(*config.ListsRegistry) error
	cursor   int
	styles   *Styles
}

// NewListSelector creates a list selector. current is the path of the open
// task file; save persists registry changes.
func NewListSelector(registry *config.ListsRegistry, current string, save func(*config.ListsRegistry) error) *ListSelector {
	if save == nil {
		save = config.SaveListsRegistry
	}
	s := &ListSelector{
		registry: registry,
		current:  current,
		save:     save,
		styles:   New(),
	}
	for i, l := range registry.Lists {
		if l.Path == current {
			s.cursor = i
		}
	}
	return s
}

// Init initializes the overlay
func (m *ListSelector) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *ListSelector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "esc", "q":
		return m, closeOverlay
	case "j", "down":
		if m.cursor < len(m.registry.Lists)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if l, ok := m.selected(); ok {
			return m, func() tea.Msg { return ListSelectedMsg{List: l} }
		}
	case "d":
		if l, ok := m.selected(); ok {
			return m, m.mutate("set-default", l.Name, func() error { return m.registry.SetDefault(l.Name) })
		}
	case "x":
		if l, ok := m.selected(); ok && l.Path != m.current {
			cmd := m.mutate("remove", l.Name, func() error { return m.registry.Remove(l.Name) })
			m.cursor = max(0, min(m.cursor, len(m.registry.Lists)-1))
			return m, cmd
		}
	}
	return m, nil
}

func (m *ListSelector) selected() (config.List, bool) {
	if m.cursor < 0 || m.cursor >= len(m.registry.Lists) {
		return config.List{}, false
	}
	return m.registry.Lists[m.cursor], true
}

// mutate applies fn to the registry and saves it, reporting the outcome as
// a SelectionMsg keyed "<action>-success" or "<action>-error"
func (m *ListSelector) mutate(action, name string, fn func() error) tea.Cmd {
	if err := fn(); err != nil {
		return selection(action+"-error", err)
	}
	if err := m.save(m.registry); err != nil {
		return selection("save-error", err)
	}
	return selection(action+"-success", name)
}

// View renders the list selector
func (m *ListSelector) View() string {
	var b strings.Builder

	if len(m.registry.Lists) == 0 {
		b.WriteString(m.styles.MenuItem.Render("No lists registered"))
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render("Add one with: aurora lists add <name> <file> • Esc: close"))
		return b.String()
	}

	for i, l := range m.registry.Lists {
		style := m.styles.MenuItem
		marker := "  "
		if i == m.cursor {
			style = m.styles.MenuItemActive
			marker = "▶ "
		}
		line := marker + l.Name
		if l.Path == m.current {
			line += " (open)"
		}
		b.WriteString(style.Render(line))
		if l.Name == m.registry.DefaultList {
			b.WriteString(" " + m.styles.MenuKey.Render("[default]"))
		}
		b.WriteString("\n")
		b.WriteString(m.styles.MenuItemDisabled.Render("    " + l.Path))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Footer.Render("Enter: switch • d: set default • x: remove • Esc: close"))
	return b.String()
}

// Title returns the overlay title
func (m *ListSelector) Title() string {
	return "Task Lists"
}

// Size returns the overlay dimensions
func (m *ListSelector) Size() (width, height int) {
	return 70, max(10, len(m.registry.Lists)*2+6)
}
