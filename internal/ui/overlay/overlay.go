// Package overlay contains the modal panels drawn over the board: forms,
// menus, dialogs and the search bar.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// SelectionMsg is sent when a menu entry or dialog button is chosen
type SelectionMsg struct {
	Key   string
	Value any
}

func closeOverlay() tea.Msg { return CloseOverlayMsg{} }

func selection(key string, value any) tea.Cmd {
	return func() tea.Msg { return SelectionMsg{Key: key, Value: value} }
}
