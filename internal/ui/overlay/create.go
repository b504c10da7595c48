package overlay

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
)

// TaskSavedMsg is emitted when the form is submitted. The task still has
// to go through the save path (normalize, validate, place) before storing.
type TaskSavedMsg struct {
	Task  domain.Task
	IsNew bool
}

// Form focus order
const (
	focusTitle = iota
	focusNotes
	focusDue
	focusEnd
	focusTime
	focusTags
	focusRemind
	focusPriority
	focusRepeat
	focusInterval
	focusChecklist
	focusSubmit
	focusCount
)

// single-line inputs in inputs[]
var inputFields = []struct {
	focus       int
	label       string
	placeholder string
	limit       int
}{
	{focusDue, "Due:", "YYYY-MM-DD (empty = no date)", 10},
	{focusEnd, "Until:", "YYYY-MM-DD (multi-day)", 10},
	{focusTime, "Time:", "HH:MM (empty = all day)", 5},
	{focusTags, "Tags:", "comma separated", 200},
	{focusRemind, "Remind:", "minutes before, e.g. 10, 60", 50},
	{focusInterval, "Every:", "1", 3},
}

// TaskForm creates or edits a task
type TaskForm struct {
	base      domain.Task
	isNew     bool
	title     textinput.Model
	notes     textarea.Model
	inputs    map[int]*textinput.Model
	checklist textarea.Model
	priority  domain.Priority
	repeat    domain.Repeat
	focus     int
	err       string
	styles    *Styles
}

// NewTaskForm opens a form prefilled from task. isNew selects create or edit
// wording and is echoed in TaskSavedMsg.
func NewTaskForm(task domain.Task, isNew bool) *TaskForm {
	f := &TaskForm{
		base:     task.Clone(),
		isNew:    isNew,
		inputs:   make(map[int]*textinput.Model, len(inputFields)),
		priority: task.Priority,
		repeat:   task.Repeat,
		styles:   New(),
	}
	if f.priority == "" {
		f.priority = domain.PriorityMedium
	}
	if f.repeat == "" {
		f.repeat = domain.RepeatNone
	}

	f.title = textinput.New()
	f.title.Placeholder = "What needs doing?"
	f.title.CharLimit = 200
	f.title.Width = 50
	f.title.SetValue(task.Title)
	f.title.Focus()

	f.notes = textarea.New()
	f.notes.Placeholder = "Notes (optional)..."
	f.notes.CharLimit = 4000
	f.notes.SetWidth(56)
	f.notes.SetHeight(3)
	f.notes.SetValue(task.Notes)

	values := map[int]string{
		focusDue:      task.NextDue,
		focusTime:     task.Time,
		focusTags:     strings.Join(task.Tags, ", "),
		focusRemind:   joinInts(task.RemindBefore),
		focusInterval: strconv.Itoa(max(1, task.RepeatIntervalDays)),
	}
	if task.EndDate != "" && task.EndDate != task.NextDue {
		values[focusEnd] = task.EndDate
	}
	for _, field := range inputFields {
		ti := textinput.New()
		ti.Placeholder = field.placeholder
		ti.CharLimit = field.limit
		ti.Width = 40
		ti.SetValue(values[field.focus])
		f.inputs[field.focus] = &ti
	}

	f.checklist = textarea.New()
	f.checklist.Placeholder = "One item per line"
	f.checklist.SetWidth(56)
	f.checklist.SetHeight(3)
	items := make([]string, len(task.Checklist))
	for i, item := range task.Checklist {
		items[i] = item.Text
	}
	f.checklist.SetValue(strings.Join(items, "\n"))

	return f
}

// Init initializes the overlay
func (f *TaskForm) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (f *TaskForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return f, closeOverlay
		case "ctrl+s":
			return f, f.submit()
		case "tab", "down":
			if key.String() == "tab" || !f.isTextarea() {
				f.setFocus((f.focus + 1) % focusCount)
				return f, nil
			}
		case "shift+tab", "up":
			if key.String() == "shift+tab" || !f.isTextarea() {
				f.setFocus((f.focus - 1 + focusCount) % focusCount)
				return f, nil
			}
		case "enter":
			switch {
			case f.focus == focusSubmit:
				return f, f.submit()
			case !f.isTextarea():
				f.setFocus(f.focus + 1)
				return f, nil
			}
		}

		switch f.focus {
		case focusPriority:
			f.updatePriority(key.String())
			return f, nil
		case focusRepeat:
			f.updateRepeat(key.String())
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
	case focusNotes:
		f.notes, cmd = f.notes.Update(msg)
	case focusChecklist:
		f.checklist, cmd = f.checklist.Update(msg)
	default:
		if in, ok := f.inputs[f.focus]; ok {
			*in, cmd = in.Update(msg)
		}
	}
	return f, cmd
}

func (f *TaskForm) isTextarea() bool {
	return f.focus == focusNotes || f.focus == focusChecklist
}

func (f *TaskForm) setFocus(i int) {
	f.focus = i
	f.title.Blur()
	f.notes.Blur()
	f.checklist.Blur()
	for _, in := range f.inputs {
		in.Blur()
	}
	switch i {
	case focusTitle:
		f.title.Focus()
	case focusNotes:
		f.notes.Focus()
	case focusChecklist:
		f.checklist.Focus()
	default:
		if in, ok := f.inputs[i]; ok {
			in.Focus()
		}
	}
}

func (f *TaskForm) updatePriority(key string) {
	switch key {
	case "l", "L":
		f.priority = domain.PriorityLow
	case "m", "M":
		f.priority = domain.PriorityMedium
	case "h", "H":
		f.priority = domain.PriorityHigh
	case "left", "right":
		i := slices.Index(domain.Priorities, f.priority)
		f.priority = domain.Priorities[cycle(i, len(domain.Priorities), key == "right")]
	}
}

func (f *TaskForm) updateRepeat(key string) {
	if key != "left" && key != "right" && key != " " {
		return
	}
	i := slices.Index(domain.Repeats, f.repeat)
	f.repeat = domain.Repeats[cycle(i, len(domain.Repeats), key != "left")]
}

func cycle(i, n int, forward bool) int {
	if i < 0 {
		return 0
	}
	if forward {
		return (i + 1) % n
	}
	return (i - 1 + n) % n
}

// Build parses the form into a task, reporting the first field error
func (f *TaskForm) Build() (domain.Task, error) {
	out := f.base.Clone()
	out.Title = strings.TrimSpace(f.title.Value())
	if out.Title == "" {
		return out, errors.New("title is required")
	}
	out.Notes = strings.TrimSpace(f.notes.Value())
	out.Priority = f.priority
	out.Repeat = f.repeat

	due := strings.TrimSpace(f.value(focusDue))
	if due != "" && !calendar.ParseISO(due).Valid() {
		return out, fmt.Errorf("due date %q is not YYYY-MM-DD", due)
	}
	end := strings.TrimSpace(f.value(focusEnd))
	if end != "" && !calendar.ParseISO(end).Valid() {
		return out, fmt.Errorf("end date %q is not YYYY-MM-DD", end)
	}
	if end != "" && due == "" {
		return out, errors.New("an end date needs a due date")
	}
	out.NextDue, out.EndDate = due, end
	if out.EndDate == "" {
		out.EndDate = out.NextDue
	}

	clock := strings.TrimSpace(f.value(focusTime))
	if clock != "" {
		c, ok := calendar.ParseClock(clock)
		if !ok {
			return out, fmt.Errorf("time %q is not HH:MM", clock)
		}
		clock = c.String()
	}
	out.Time = clock

	out.Tags = nil
	for _, tag := range strings.Split(f.value(focusTags), ",") {
		if tag = strings.TrimPrefix(strings.TrimSpace(tag), "#"); tag != "" && !slices.Contains(out.Tags, tag) {
			out.Tags = append(out.Tags, tag)
		}
	}

	out.RemindBefore = nil
	for _, field := range strings.FieldsFunc(f.value(focusRemind), func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(field)
		if err != nil || n < 1 {
			return out, fmt.Errorf("reminder %q must be a positive number of minutes", field)
		}
		out.RemindBefore = append(out.RemindBefore, n)
	}

	interval := strings.TrimSpace(f.value(focusInterval))
	out.RepeatIntervalDays = 1
	if interval != "" {
		n, err := strconv.Atoi(interval)
		if err != nil || n < domain.MinInterval || n > domain.MaxInterval {
			return out, fmt.Errorf("interval must be between %d and %d", domain.MinInterval, domain.MaxInterval)
		}
		out.RepeatIntervalDays = n
	}

	out.Checklist = f.buildChecklist()
	return out, nil
}

// buildChecklist keeps the ID and done flag of lines whose text is unchanged
func (f *TaskForm) buildChecklist() []domain.ChecklistItem {
	existing := make(map[string]domain.ChecklistItem, len(f.base.Checklist))
	for _, item := range f.base.Checklist {
		if _, dup := existing[item.Text]; !dup {
			existing[item.Text] = item
		}
	}

	var out []domain.ChecklistItem
	for _, line := range strings.Split(f.checklist.Value(), "\n") {
		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if item, ok := existing[text]; ok {
			out = append(out, item)
			delete(existing, text)
			continue
		}
		out = append(out, domain.ChecklistItem{ID: domain.NewID(), Text: text})
	}
	return out
}

func (f *TaskForm) value(focus int) string {
	if in, ok := f.inputs[focus]; ok {
		return in.Value()
	}
	return ""
}

// submit validates the form and emits a TaskSavedMsg
func (f *TaskForm) submit() tea.Cmd {
	task, err := f.Build()
	if err != nil {
		f.err = err.Error()
		return nil
	}
	f.err = ""
	isNew := f.isNew
	return tea.Batch(
		func() tea.Msg { return TaskSavedMsg{Task: task, IsNew: isNew} },
		closeOverlay,
	)
}

// View renders the form
func (f *TaskForm) View() string {
	var b strings.Builder

	f.field(&b, focusTitle, "Title:", f.title.View())
	b.WriteString(f.label(focusNotes, "Notes:"))
	b.WriteString("\n")
	b.WriteString(f.notes.View())
	b.WriteString("\n")

	for _, field := range inputFields {
		if field.focus == focusInterval {
			continue
		}
		f.field(&b, field.focus, field.label, f.inputs[field.focus].View())
	}
	f.field(&b, focusPriority, "Priority:", f.renderPriority())
	f.field(&b, focusRepeat, "Repeat:", f.renderRepeat())
	if f.repeat.IsRecurring() {
		f.field(&b, focusInterval, "Every:", f.inputs[focusInterval].View())
	}

	b.WriteString(f.label(focusChecklist, "Checklist:"))
	b.WriteString("\n")
	b.WriteString(f.checklist.View())
	b.WriteString("\n\n")

	submitStyle := f.styles.MenuItem
	if f.focus == focusSubmit {
		submitStyle = f.styles.MenuItemActive
	}
	action := "[ Save Task ]"
	if f.isNew {
		action = "[ Create Task ]"
	}
	b.WriteString(submitStyle.Render(action))
	b.WriteString("\n")

	if f.err != "" {
		b.WriteString(f.styles.Error.Render(f.err))
		b.WriteString("\n")
	}

	hints := []string{
		f.styles.MenuKey.Render("Tab") + " " + f.styles.Footer.Render("Next field"),
		f.styles.MenuKey.Render("Ctrl+S") + " " + f.styles.Footer.Render("Save"),
		f.styles.MenuKey.Render("Esc") + " " + f.styles.Footer.Render("Cancel"),
	}
	b.WriteString(f.styles.Footer.Render(strings.Join(hints, " • ")))
	return b.String()
}

func (f *TaskForm) label(focus int, text string) string {
	if f.focus == focus {
		return f.styles.LabelFocused.Render(text)
	}
	return f.styles.Label.Render(text)
}

func (f *TaskForm) field(b *strings.Builder, focus int, label, value string) {
	b.WriteString(f.label(focus, label))
	b.WriteString("  ")
	b.WriteString(value)
	b.WriteString("\n")
}

func (f *TaskForm) renderPriority() string {
	var parts []string
	for _, p := range domain.Priorities {
		style, mark := f.styles.MenuItem, " "
		if p == f.priority {
			style, mark = f.styles.MenuItemActive, "●"
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s%s]", mark, p.Short())))
	}
	return strings.Join(parts, " ")
}

func (f *TaskForm) renderRepeat() string {
	style := f.styles.MenuItem
	if f.focus == focusRepeat {
		style = f.styles.MenuItemActive
	}
	return style.Render("◀ " + f.repeat.String() + " ▶")
}

// Title returns the overlay title
func (f *TaskForm) Title() string {
	if f.isNew {
		return "New Task"
	}
	return "Edit Task"
}

// Size returns the overlay dimensions
func (f *TaskForm) Size() (width, height int) {
	return 72, 32
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
