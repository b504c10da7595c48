package overlay

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/domain"
)

// filterMode represents the current selection mode
type filterMode string

const (
	filterModeNormal   filterMode = "normal"
	filterModePriority filterMode = "priority"
	filterModeTag      filterMode = "tag"
)

// maxTagChoices is how many tags the tag submenu can address by digit
const maxTagChoices = 9

// FilterMenu is a menu overlay for task filtering. It edits the filter in
// place; the board re-filters on the next render.
type FilterMenu struct {
	filter *domain.Filter
	tags   []string
	styles *Styles
	mode   filterMode
}

// NewFilterMenu creates a new filter menu for the given filter. tags are the
// choices offered by the tag submenu.
func NewFilterMenu(filter *domain.Filter, tags []string) *FilterMenu {
	return &FilterMenu{
		filter: filter,
		tags:   tags,
		styles: New(),
		mode:   filterModeNormal,
	}
}

// Init initializes the menu
func (m *FilterMenu) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *FilterMenu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch m.mode {
	case filterModePriority:
		m.handlePriorityMode(key)
	case filterModeTag:
		m.handleTagMode(key)
	default:
		return m.handleNormalMode(key)
	}
	return m, nil
}

// handleNormalMode handles keys in normal mode
func (m *FilterMenu) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return m, closeOverlay
	case "p":
		m.mode = filterModePriority
	case "t":
		m.mode = filterModeTag
	case "x":
		m.filter.ShowCompleted = !m.filter.ShowCompleted
	case "c":
		m.filter.Clear()
	}
	return m, nil
}

// handlePriorityMode toggles one priority and returns to the main menu
func (m *FilterMenu) handlePriorityMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "l":
		m.filter.TogglePriority(domain.PriorityLow)
	case "m":
		m.filter.TogglePriority(domain.PriorityMedium)
	case "h":
		m.filter.TogglePriority(domain.PriorityHigh)
	}
	m.mode = filterModeNormal
}

// handleTagMode picks a tag by digit; 0 shows all tags
func (m *FilterMenu) handleTagMode(msg tea.KeyMsg) {
	defer func() { m.mode = filterModeNormal }()

	n, err := strconv.Atoi(msg.String())
	if err != nil {
		return
	}
	if n == 0 {
		m.filter.Tag = ""
		return
	}
	if n <= len(m.tags) && n <= maxTagChoices {
		m.filter.Tag = m.tags[n-1]
	}
}

// View renders the menu
func (m *FilterMenu) View() string {
	switch m.mode {
	case filterModePriority:
		return m.viewPriority()
	case filterModeTag:
		return m.viewTags()
	}

	var b strings.Builder
	b.WriteString(m.line("p", "Priority", m.prioritySummary()))
	b.WriteString(m.line("t", "Tag", m.tagSummary()))
	b.WriteString(m.line("x", "Show completed", onOff(m.filter.ShowCompleted)))
	b.WriteString(m.line("c", "Clear all", ""))
	if q := strings.TrimSpace(m.filter.Query); q != "" {
		b.WriteString(m.styles.MenuItemDisabled.Render(fmt.Sprintf("search: %q", q)))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Footer.Render("Esc: close"))
	return b.String()
}

func (m *FilterMenu) viewPriority() string {
	var b strings.Builder
	for _, p := range []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh} {
		b.WriteString(m.line(strings.ToLower(p.Short()), p.String(), onOff(m.filter.Priority[p])))
	}
	b.WriteString(m.styles.Footer.Render("Press a key to toggle • Esc: back"))
	return b.String()
}

func (m *FilterMenu) viewTags() string {
	var b strings.Builder
	b.WriteString(m.line("0", "All tags", onOff(m.filter.Tag == "")))
	if len(m.tags) == 0 {
		b.WriteString(m.styles.MenuItemDisabled.Render("No tags on any task"))
		b.WriteString("\n")
	}
	for i, tag := range m.tags {
		if i >= maxTagChoices {
			b.WriteString(m.styles.MenuItemDisabled.Render(fmt.Sprintf("+%d more", len(m.tags)-maxTagChoices)))
			b.WriteString("\n")
			break
		}
		b.WriteString(m.line(strconv.Itoa(i+1), "#"+tag, onOff(m.filter.Tag == tag)))
	}
	b.WriteString(m.styles.Footer.Render("Press a number to choose • Esc: back"))
	return b.String()
}

func (m *FilterMenu) line(key, label, state string) string {
	s := m.styles.MenuKey.Render("["+key+"]") + " " + m.styles.MenuItem.Render(label)
	if state != "" {
		s += " " + m.styles.MenuItemActive.Render(state)
	}
	return s + "\n"
}

func (m *FilterMenu) prioritySummary() string {
	var on []string
	for _, p := range domain.Priorities {
		if m.filter.Priority[p] {
			on = append(on, p.String())
		}
	}
	if len(on) == 0 {
		return "all"
	}
	return strings.Join(on, ", ")
}

func (m *FilterMenu) tagSummary() string {
	if m.filter.Tag == "" {
		return "all"
	}
	return "#" + m.filter.Tag
}

func onOff(b bool) string {
	if b {
		return "●"
	}
	return "○"
}

// Title returns the overlay title
func (m *FilterMenu) Title() string {
	switch m.mode {
	case filterModePriority:
		return "Filter: Priority"
	case filterModeTag:
		return "Filter: Tag"
	default:
		return "Filter"
	}
}

// Size returns the overlay dimensions
func (m *FilterMenu) Size() (width, height int) {
	if m.mode == filterModeTag {
		return 50, min(len(m.tags), maxTagChoices) + 8
	}
	return 50, 11
}
