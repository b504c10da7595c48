// Package toast renders the toast stack shown under the board.
package toast

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/types"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

const (
	// MaxVisible is how many toasts are drawn at once; older ones collapse
	// into a count
	MaxVisible = 3
	maxWidth   = 48
	// reminders carry task titles and get more room
	maxReminderWidth = 60
)

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
	}
}

// Render draws the newest toasts right-aligned, newest last. Returns "" when
// there is nothing to show.
func (r *ToastRenderer) Render(toasts []types.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	var rendered []string
	hidden := max(0, len(toasts)-MaxVisible)
	if hidden > 0 {
		rendered = append(rendered, r.styles.MenuItemDisabled.Render(fmt.Sprintf("+%d more", hidden)))
	}
	for _, t := range toasts[hidden:] {
		w := min(width/3, maxWidth)
		if t.Level == types.ToastReminder {
			w = min(width/2, maxReminderWidth)
		}
		text := t.Level.Icon() + " " + t.Message
		rendered = append(rendered, r.styleForLevel(t.Level).Width(max(w, 10)).Render(text))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	case types.ToastReminder:
		return r.styles.ToastReminder
	default:
		return r.styles.ToastInfo
	}
}
