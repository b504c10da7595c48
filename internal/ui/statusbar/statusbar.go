// Package statusbar renders the single-line footer of the board screen.
package statusbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/types"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode   types.Mode
	view   types.View
	info   string
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithView sets the active view shown next to the mode badge
func (sb StatusBar) WithView(v types.View) StatusBar {
	sb.view = v
	return sb
}

// WithInfo sets right-hand context such as filter state or the week shown
func (sb StatusBar) WithInfo(info string) StatusBar {
	sb.info = info
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(sb.mode.String())
	viewBadge := sb.styles.StatusView.Render(sb.view.Label())

	parts := []string{modeBadge, viewBadge}

	hints := GetHints(sb.mode, sb.view)
	if hints != "" {
		parts = append(parts, sb.styles.StatusHint.Render(" │ "+hints))
	}
	if sb.info != "" {
		parts = append(parts, sb.styles.StatusInfo.Render(" │ "+sb.info))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return sb.styles.StatusBar.Width(sb.width).MaxHeight(1).Render(content)
}
