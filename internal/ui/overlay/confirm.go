package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmDialog is a confirmation dialog overlay with Yes/No options
type ConfirmDialog struct {
	title    string
	message  string
	payload  any
	styles   *Styles
	selected bool // true = Yes, false = No
}

// ConfirmResult carries the answer and whatever the caller attached to the
// dialog, typically the IDs of the tasks it is about
type ConfirmResult struct {
	Confirmed bool
	Payload   any
}

// NewConfirmDialog creates a confirmation dialog. payload is echoed back in
// the ConfirmResult.
func NewConfirmDialog(title, message string, payload any) *ConfirmDialog {
	return &ConfirmDialog{
		title:   title,
		message: message,
		payload: payload,
		styles:  New(),
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "y", "Y":
		return c, c.answer(true)
	case "n", "N", "esc":
		return c, c.answer(false)
	case "enter":
		return c, c.answer(c.selected)
	case "left", "h":
		c.selected = true
	case "right", "l":
		c.selected = false
	case "tab":
		c.selected = !c.selected
	}
	return c, nil
}

func (c *ConfirmDialog) answer(yes bool) tea.Cmd {
	key := "no"
	if yes {
		key = "yes"
	}
	return selection(key, ConfirmResult{Confirmed: yes, Payload: c.payload})
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle, noStyle := c.styles.MenuItem, c.styles.MenuItemActive
	if c.selected {
		yesStyle, noStyle = c.styles.MenuItemActive, c.styles.MenuItem
	}
	b.WriteString(yesStyle.Render("[Y] Yes") + "    " + noStyle.Render("[N] No"))
	b.WriteString("\n\n")
	b.WriteString(c.styles.Footer.Render("← → / Tab: Switch • Enter: Confirm • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 60, messageLines + 6
}
