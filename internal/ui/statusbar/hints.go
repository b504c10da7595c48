package statusbar

import "github.com/riordanpawley/aurora/internal/types"

// GetHints returns the keybinding hints for the given mode and view
func GetHints(mode types.Mode, view types.View) string {
	switch mode {
	case types.ModeNormal:
		switch view {
		case types.ViewCalendar:
			return "[/]: week  t: today  h/l: days  j/k: lanes  Tab: view  ?: help"
		case types.ViewSplit:
			return "h/l: columns  j/k: tasks  [/]: week  x: done  Tab: view  ?: help"
		default:
			return "h/l: columns  j/k: tasks  x: done  H/L: move  ?: help  q: quit"
		}
	case types.ModeGoto:
		return "g: top  e: end  h: first col  l: last col  t: today  Esc: cancel"
	case types.ModeSelect:
		return "Space: toggle  A: all  x: done  H/L: move  Esc: cancel"
	case types.ModeSearch:
		return "Type to search  Enter: confirm  Esc: cancel"
	default:
		return ""
	}
}
