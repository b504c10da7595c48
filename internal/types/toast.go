package types

import "time"

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
	// ToastReminder announces a fired task reminder
	ToastReminder
)

// Icon returns the glyph shown before a toast's message
func (l ToastLevel) Icon() string {
	switch l {
	case ToastSuccess:
		return "✓"
	case ToastWarning:
		return "!"
	case ToastError:
		return "✗"
	case ToastReminder:
		return "⏰"
	default:
		return "•"
	}
}

// Toast is a transient message shown over the board until Expires
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// Expired reports whether the toast is gone at now
func (t Toast) Expired(now time.Time) bool {
	return !t.Expires.After(now)
}

// PruneToasts returns the toasts still live at now, oldest first
func PruneToasts(toasts []Toast, now time.Time) []Toast {
	live := make([]Toast, 0, len(toasts))
	for _, t := range toasts {
		if !t.Expired(now) {
			live = append(live, t)
		}
	}
	return live
}
