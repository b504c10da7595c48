// Package styles holds the lipgloss styles shared by every view.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Board
	Board              lipgloss.Style
	Column             lipgloss.Style
	ColumnHeader       lipgloss.Style
	ColumnHeaderActive lipgloss.Style

	// Cards
	Card         lipgloss.Style
	CardActive   lipgloss.Style
	CardSelected lipgloss.Style
	TaskTitle    lipgloss.Style
	TaskDone     lipgloss.Style
	TaskMeta     lipgloss.Style
	Overdue      lipgloss.Style
	ManualMark   lipgloss.Style

	// Badges
	PriorityBadge func(p domain.Priority) lipgloss.Style
	TagBadge      lipgloss.Style

	// Calendar
	DayHeader      lipgloss.Style
	DayHeaderToday lipgloss.Style
	LaneBar        func(s domain.Status) lipgloss.Style
	LaneBarActive  lipgloss.Style
	LaneEmpty      lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusView lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlays
	Overlay          lipgloss.Style
	OverlayTitle     lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	Separator        lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
	// ToastReminder highlights fired task reminders
	ToastReminder lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Board: lipgloss.NewStyle().
			Background(Base),

		Column: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		ColumnHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1),

		ColumnHeaderActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1),

		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1).
			MarginBottom(1),

		CardActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1).
			MarginBottom(1),

		CardSelected: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Mauve).
			Padding(0, 1).
			MarginBottom(1),

		TaskTitle: lipgloss.NewStyle().
			Foreground(Text),

		TaskDone: lipgloss.NewStyle().
			Foreground(Overlay0).
			Strikethrough(true),

		TaskMeta: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overdue: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		ManualMark: lipgloss.NewStyle().
			Foreground(Mauve),

		PriorityBadge: func(p domain.Priority) lipgloss.Style {
			color, ok := PriorityColors[p]
			if !ok {
				color = Overlay0
			}
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color).
				Padding(0, 1).
				Bold(true)
		},

		TagBadge: lipgloss.NewStyle().
			Foreground(Subtext0).
			Background(Surface1).
			Padding(0, 1),

		DayHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true),

		DayHeaderToday: lipgloss.NewStyle().
			Foreground(Base).
			Background(Peach).
			Bold(true),

		LaneBar: func(s domain.Status) lipgloss.Style {
			color, ok := StatusColors[s]
			if !ok {
				color = Surface2
			}
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color)
		},

		LaneBarActive: lipgloss.NewStyle().
			Foreground(Base).
			Background(Lavender).
			Bold(true),

		LaneEmpty: lipgloss.NewStyle().
			Foreground(Surface1),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusView: lipgloss.NewStyle().
			Background(Mauve).
			Foreground(Base).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),

		ToastReminder: lipgloss.NewStyle().
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(Peach).
			Foreground(Text).
			Bold(true).
			Padding(0, 1),
	}
}
