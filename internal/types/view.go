package types

// View is the main layout of the board screen
type View int

const (
	ViewKanban View = iota
	ViewCalendar
	ViewSplit
)

// Views lists layouts in the order Tab cycles through them
var Views = []View{ViewKanban, ViewCalendar, ViewSplit}

// String returns the config name of the view
func (v View) String() string {
	switch v {
	case ViewCalendar:
		return "calendar"
	case ViewSplit:
		return "split"
	default:
		return "kanban"
	}
}

// Label is the status bar text for the view
func (v View) Label() string {
	switch v {
	case ViewCalendar:
		return "Calendar"
	case ViewSplit:
		return "Split"
	default:
		return "Kanban"
	}
}

// Next returns the view after v
func (v View) Next() View {
	return Views[(int(v)+1)%len(Views)]
}

// ParseView maps a config name to a View, defaulting to kanban
func ParseView(s string) View {
	switch s {
	case "calendar":
		return ViewCalendar
	case "split":
		return ViewSplit
	default:
		return ViewKanban
	}
}
