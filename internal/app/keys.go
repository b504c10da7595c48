package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/planner"
	"github.com/riordanpawley/aurora/internal/types"
	"github.com/riordanpawley/aurora/internal/ui/overlay"
)

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in any mode)
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+l":
		// Force redraw
		return m, tea.ClearScreen
	}

	// Escape exits non-normal modes
	if msg.String() == "esc" && !m.editor.IsNormal() {
		if m.editor.IsSelect() {
			m.editor.ClearSelection()
		}
		m.editor.EnterNormal()
		return m, nil
	}

	switch m.editor.GetMode() {
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeGoto:
		return m.handleGotoMode(msg)
	case ModeSelect:
		return m.handleSelectMode(msg)
	default:
		return m, nil
	}
}

// handleNormalMode processes keyboard input in normal mode
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleMovement(msg.String()) {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "esc":
		if m.editor.IsFilterActive() {
			m.editor.ClearFilters()
			m.editor.SetShowCompleted(m.config.Board.ShowCompleted)
			m.addToast(ToastInfo, "Filters cleared", 2*time.Second)
		}
		return m, nil

	// Mode switches
	case "g":
		m.editor.EnterGoto()
		return m, nil

	case "v":
		m.editor.EnterSelect()
		return m, nil

	case "tab":
		m.view = m.view.Next()
		m.addToast(ToastInfo, m.view.Label()+" view", 2*time.Second)
		return m, nil

	// Task actions
	case "enter":
		if task := m.currentTask(); task != nil {
			return m, m.overlayStack.Push(overlay.NewDetailPanel(*task, m.asOf()))
		}
		return m, nil

	case "n":
		return m, m.overlayStack.Push(overlay.NewTaskForm(m.newTask(), true))

	case "e":
		if task := m.currentTask(); task != nil {
			return m, m.overlayStack.Push(overlay.NewTaskForm(*task, false))
		}
		return m, nil

	case "s":
		m.snoozeLastReminder()
		return m, nil

	case "x", "H", "L", "a", "d":
		return m.applyToTargets(msg.String())

	// Filter and sort
	case "/":
		m.editor.EnterSearch()
		search := overlay.NewSearchOverlay(m.editor.GetFilter().Query)
		cmd := m.overlayStack.Push(search)
		m.updateSearchCount()
		return m, cmd

	case "f":
		return m, m.overlayStack.Push(overlay.NewFilterMenu(m.editor.GetFilter(), domain.AllTags(m.tasks)))

	case ",":
		return m, m.overlayStack.Push(overlay.NewSortMenu(m.editor.GetSort()))

	case "t":
		tag := m.editor.CycleTagFilter(m.tasks)
		if tag == "" {
			m.addToast(ToastInfo, "Tag: all", 2*time.Second)
		} else {
			m.addToast(ToastInfo, "Tag: #"+tag, 2*time.Second)
		}
		return m, nil

	case "1", "2", "3":
		p := domain.Priorities[msg.String()[0]-'1']
		m.editor.TogglePriorityFilter(p)
		state := "off"
		if m.editor.GetFilter().Priority[p] {
			state = "on"
		}
		m.addToast(ToastInfo, fmt.Sprintf("Priority %s: %s", p, state), 2*time.Second)
		return m, nil

	case "c":
		if m.editor.ToggleShowCompleted() {
			m.addToast(ToastInfo, "Showing completed", 2*time.Second)
		} else {
			m.addToast(ToastInfo, "Hiding completed", 2*time.Second)
		}
		return m, nil

	case "?":
		return m, m.overlayStack.Push(overlay.NewHelpOverlay())
	}

	return m, nil
}

// handleMovement moves the cursor of the active view. It reports whether
// the key was a movement key.
func (m *Model) handleMovement(key string) bool {
	switch key {
	case "[":
		m.shiftWeek(-1)
		return true
	case "]":
		m.shiftWeek(1)
		return true
	}

	if m.view == types.ViewCalendar {
		w := m.currentWeek()
		switch key {
		case "j", "down":
			m.nav.MoveLane(w, 1)
		case "k", "up":
			m.nav.MoveLane(w, -1)
		case "h", "left":
			m.nav.MoveDay(w, -1)
		case "l", "right":
			m.nav.MoveDay(w, 1)
		default:
			return false
		}
		return true
	}

	columns := m.buildColumns()
	switch key {
	case "j", "down":
		m.nav.MoveDown(columns)
	case "k", "up":
		m.nav.MoveUp(columns)
	case "h", "left":
		m.nav.MoveLeft(columns)
	case "l", "right":
		m.nav.MoveRight(columns)
	case "ctrl+d":
		m.nav.HalfPageDown(columns, m.halfPage())
	case "ctrl+u":
		m.nav.HalfPageUp(columns, m.halfPage())
	default:
		return false
	}
	return true
}

// handleGotoMode processes keyboard input in goto mode
func (m Model) handleGotoMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.buildColumns()
	// Always return to normal mode after processing
	m.editor.EnterNormal()

	switch msg.String() {
	case "g":
		m.nav.GotoTop(columns)
	case "e":
		m.nav.GotoBottom(columns)
	case "h":
		m.nav.GotoFirstColumn(columns)
	case "l":
		m.nav.GotoLastColumn(columns)
	case "t":
		m.gotoToday()
	case "p":
		if m.registry == nil {
			m.addToast(ToastWarning, "No list registry loaded", 3*time.Second)
			return m, nil
		}
		return m, m.overlayStack.Push(overlay.NewListSelector(m.registry, m.storePath, nil))
	}

	return m, nil
}

// handleSelectMode processes keyboard input in select mode
func (m Model) handleSelectMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.handleMovement(msg.String()) {
		return m, nil
	}

	switch msg.String() {
	case " ":
		if task := m.currentTask(); task != nil {
			m.editor.ToggleSelection(task.ID)
		}
		return m, nil

	case "A":
		m.editor.SelectAll(m.editor.ApplyFilter(m.tasks))
		return m, nil

	case "x", "H", "L", "a", "d":
		return m.applyToTargets(msg.String())
	}

	return m, nil
}

// applyToTargets runs a task action on the selection, or on the task under
// the cursor when nothing is selected
func (m Model) applyToTargets(key string) (tea.Model, tea.Cmd) {
	ids, label := m.targets()
	if len(ids) == 0 {
		return m, nil
	}
	if m.editor.IsSelect() {
		m.editor.ClearSelection()
		m.editor.EnterNormal()
	}

	switch key {
	case "x":
		return m, m.completeTasksCmd(ids, "Updated "+label)
	case "H":
		return m, m.moveTasksCmd(ids, -1, "Moved "+label)
	case "L":
		return m, m.moveTasksCmd(ids, 1, "Moved "+label)
	case "a":
		return m, m.autoPlaceTasksCmd(ids, "Auto placement for "+label)
	case "d":
		dialog := overlay.NewConfirmDialog("Delete", fmt.Sprintf("Delete %s?", label), ids)
		return m, m.overlayStack.Push(dialog)
	}
	return m, nil
}

// targets returns the IDs an action applies to and a label for messages
func (m Model) targets() ([]string, string) {
	if m.editor.HasSelection() {
		ids := m.editor.GetSelectedTasksList()
		return ids, plural(len(ids), "task")
	}
	if task := m.currentTask(); task != nil {
		return []string{task.ID}, fmt.Sprintf("%q", task.Title)
	}
	return nil, ""
}

// handleOverlayKey routes keyboard messages to the overlay stack
func (m Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd := m.overlayStack.Update(msg)
	return m, cmd
}

// handleSelection handles overlay selection messages
func (m Model) handleSelection(msg overlay.SelectionMsg) (tea.Model, tea.Cmd) {
	switch msg.Key {
	case "yes", "no":
		m.overlayStack.Pop()
		result, ok := msg.Value.(overlay.ConfirmResult)
		if !ok || !result.Confirmed {
			return m, nil
		}
		ids, _ := result.Payload.([]string)
		return m, m.deleteTasksCmd(ids)

	case "sort":
		m.overlayStack.Pop()
		if sort, ok := msg.Value.(domain.Sort); ok {
			m.addToast(ToastInfo, fmt.Sprintf("Sorted by %s", sort.Field), 2*time.Second)
		}
		return m, nil

	case "edit":
		if task, ok := msg.Value.(domain.Task); ok {
			return m, m.overlayStack.Replace(overlay.NewTaskForm(task, false))
		}
		m.overlayStack.Pop()
		return m, nil

	case "complete":
		m.overlayStack.Pop()
		if id, ok := msg.Value.(string); ok {
			return m, m.completeTasksCmd([]string{id}, "Task updated")
		}
		return m, nil

	case "set-default-success":
		m.addToast(ToastSuccess, fmt.Sprintf("Default list: %v", msg.Value), 3*time.Second)
	case "remove-success":
		m.addToast(ToastSuccess, fmt.Sprintf("Removed list %v", msg.Value), 3*time.Second)
	case "set-default-error", "remove-error", "save-error":
		m.logger.Error("list registry update failed", "action", msg.Key, "error", msg.Value)
		m.addToast(ToastError, fmt.Sprintf("%v", msg.Value), 5*time.Second)
	}
	return m, nil
}

// newTask returns the blank task for the create form. In the calendar view
// it is due on the day under the cursor.
func (m Model) newTask() domain.Task {
	t := planner.NewTask(m.now())
	if m.view == types.ViewCalendar {
		c := m.nav.GetWeekCursor(m.currentWeek())
		t.NextDue = m.weekStart.AddDays(c.Day).ISO()
		t.EndDate = t.NextDue
	}
	return t
}

// shiftWeek moves the calendar by n weeks
func (m *Model) shiftWeek(n int) {
	m.weekStart = m.weekStart.AddDays(7 * n)
}

// gotoToday shows the current week with the cursor on today and the board
// on the first column
func (m *Model) gotoToday() {
	today := calendar.DateOf(m.now())
	m.weekStart = calendar.StartOfWeek(today)
	m.nav.SetDay(dayIndex(m.weekStart, today))
	m.nav.GotoFirstColumn(m.buildColumns())
}

// updateSearchCount refreshes the match counter of an open search bar
func (m Model) updateSearchCount() {
	if search, ok := m.overlayStack.Current().(*overlay.SearchOverlay); ok {
		search.SetMatchCount(len(m.editor.ApplyFilter(m.tasks)))
	}
}
