package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyBinding represents a single keybinding entry
type KeyBinding struct {
	Key         string
	Description string
}

// KeyCategory represents a category of keybindings
type KeyCategory struct {
	Name     string
	Bindings []KeyBinding
}

// HelpOverlay displays keybinding reference
type HelpOverlay struct {
	styles     *Styles
	scroll     int
	maxScroll  int
	viewHeight int
}

// NewHelpOverlay creates a new help overlay
func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		styles:     New(),
		viewHeight: 20,
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}

	switch key.String() {
	case "esc", "q", "?":
		return h, closeOverlay
	case "j", "down":
		if h.scroll < h.maxScroll {
			h.scroll++
		}
	case "k", "up":
		if h.scroll > 0 {
			h.scroll--
		}
	case "g":
		h.scroll = 0
	case "G":
		h.scroll = h.maxScroll
	}
	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	var content strings.Builder
	for i, cat := range Categories() {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(h.styles.Heading.Render(cat.Name + ":"))
		content.WriteString("\n")
		for _, binding := range cat.Bindings {
			content.WriteString("  " + h.styles.MenuKey.Render(binding.Key) + "  " + h.styles.MenuItem.Render(binding.Description))
			content.WriteString("\n")
		}
	}

	lines := strings.Split(content.String(), "\n")
	h.maxScroll = max(0, len(lines)-h.viewHeight)
	h.scroll = min(h.scroll, h.maxScroll)

	end := min(h.scroll+h.viewHeight, len(lines))
	result := strings.Join(lines[h.scroll:end], "\n")

	if h.maxScroll > 0 {
		result += "\n" + h.styles.Footer.Render("[j/k to scroll, g/G to jump]")
	}
	return result
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	h.viewHeight = 20
	return 56, 24
}

// Categories returns every keybinding shown in the help screen
func Categories() []KeyCategory {
	return []KeyCategory{
		{
			Name: "Navigation",
			Bindings: []KeyBinding{
				{Key: "h/l", Description: "Move between columns (days in calendar)"},
				{Key: "j/k", Description: "Move up/down in column (lanes in calendar)"},
				{Key: "Ctrl+d/u", Description: "Half page down/up"},
				{Key: "gg / ge", Description: "Jump to top / bottom of column"},
				{Key: "gh / gl", Description: "Jump to first / last column"},
				{Key: "gt", Description: "Jump to today"},
				{Key: "[ / ]", Description: "Previous / next week"},
			},
		},
		{
			Name: "Tasks",
			Bindings: []KeyBinding{
				{Key: "Enter", Description: "Show task details"},
				{Key: "n", Description: "New task"},
				{Key: "e", Description: "Edit task"},
				{Key: "x", Description: "Complete (repeating tasks advance)"},
				{Key: "H/L", Description: "Move to previous / next column"},
				{Key: "a", Description: "Return to automatic placement"},
				{Key: "d", Description: "Delete task"},
				{Key: "s", Description: "Snooze the last reminder"},
			},
		},
		{
			Name: "Filter & Sort",
			Bindings: []KeyBinding{
				{Key: "/", Description: "Search title and notes"},
				{Key: "f", Description: "Filter menu"},
				{Key: "t", Description: "Cycle tag filter"},
				{Key: "1/2/3", Description: "Toggle low / medium / high"},
				{Key: "c", Description: "Show / hide completed"},
				{Key: ",", Description: "Sort menu"},
			},
		},
		{
			Name: "Selection",
			Bindings: []KeyBinding{
				{Key: "v", Description: "Enter select mode"},
				{Key: "Space", Description: "Toggle selection"},
				{Key: "A", Description: "Select all visible"},
			},
		},
		{
			Name: "Other",
			Bindings: []KeyBinding{
				{Key: "Tab", Description: "Cycle kanban / calendar / split"},
				{Key: "gp", Description: "Switch task list"},
				{Key: "?", Description: "Help (this screen)"},
				{Key: "q", Description: "Quit"},
			},
		},
	}
}
