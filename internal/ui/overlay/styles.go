package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// Overlay is the base overlay container style
	Overlay lipgloss.Style
	// Title is the overlay title style
	Title lipgloss.Style
	// Heading starts a section inside an overlay
	Heading lipgloss.Style
	// Label is the right-aligned field label in forms and detail panels
	Label lipgloss.Style
	// LabelFocused is the label of the form field holding focus
	LabelFocused lipgloss.Style
	// MenuItem is the default menu item style
	MenuItem lipgloss.Style
	// MenuItemActive is the highlighted/selected menu item style
	MenuItemActive lipgloss.Style
	// MenuItemDisabled is the disabled menu item style
	MenuItemDisabled lipgloss.Style
	// MenuKey is the style for keybinding hints
	MenuKey lipgloss.Style
	// Separator is the style for divider lines
	Separator lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
	// Error renders form validation messages
	Error lipgloss.Style
	// Search is the bottom search bar
	Search lipgloss.Style
	// SearchCount is the match counter inside the search bar
	SearchCount lipgloss.Style
}

// New creates a new Styles instance using the Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.Surface2).
			Background(styles.Base).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(styles.Text).
			Bold(true).
			MarginBottom(1),

		Heading: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(styles.Teal).
			Width(12).
			Align(lipgloss.Right),

		LabelFocused: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true).
			Width(12).
			Align(lipgloss.Right),

		MenuItem: lipgloss.NewStyle().
			Foreground(styles.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(styles.Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(styles.Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(styles.Surface1),

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),

		Error: lipgloss.NewStyle().
			Foreground(styles.Red).
			Bold(true),

		Search: lipgloss.NewStyle().
			Foreground(styles.Text).
			Background(styles.Surface0),

		SearchCount: lipgloss.NewStyle().
			Foreground(styles.Overlay1).
			Background(styles.Surface0),
	}
}
