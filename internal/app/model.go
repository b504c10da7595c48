// Package app contains the main application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/config"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/reminder"
	"github.com/riordanpawley/aurora/internal/services/editor"
	"github.com/riordanpawley/aurora/internal/services/navigation"
	"github.com/riordanpawley/aurora/internal/store"
	"github.com/riordanpawley/aurora/internal/types"
	"github.com/riordanpawley/aurora/internal/ui/overlay"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal = types.ModeNormal
	ModeSelect = types.ModeSelect
	ModeSearch = types.ModeSearch
	ModeGoto   = types.ModeGoto
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo     = types.ToastInfo
	ToastSuccess  = types.ToastSuccess
	ToastWarning  = types.ToastWarning
	ToastError    = types.ToastError
	ToastReminder = types.ToastReminder
)

// StoreOpener opens the task file behind a registered list
type StoreOpener func(path string) (store.Repository, error)

// Model is the main application state
type Model struct {
	// Core data
	tasks []domain.Task
	repo  store.Repository

	// Navigation (board cursor and week cursor)
	nav *navigation.Service

	// Editor state (mode, filter, sort, selections)
	editor *editor.Service

	// UI state
	overlayStack *overlay.Stack
	view         types.View
	weekStart    calendar.Date

	// Task lists
	storePath string
	registry  *config.ListsRegistry
	openStore StoreOpener

	// Reminders
	tracker      *reminder.Tracker
	lastReminder *reminder.Reminder

	// Toasts
	toasts []Toast

	// Terminal size
	width  int
	height int

	styles *styles.Styles
	config *config.Config
	logger *slog.Logger
	now    func() time.Time

	// Loading state
	loading     bool
	spinner     spinner.Model
	lastRefresh time.Time
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the model's logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithClock overrides the time source. The returned times carry the
// display location.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithLists enables list switching. path is the task file currently open.
func WithLists(registry *config.ListsRegistry, path string, open StoreOpener) Option {
	return func(m *Model) {
		m.registry = registry
		m.storePath = path
		m.openStore = open
	}
}

// New creates a new application model reading and writing tasks through repo
func New(cfg *config.Config, repo store.Repository, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	m := Model{
		tasks:        []domain.Task{},
		repo:         repo,
		nav:          navigation.NewService(),
		editor:       editor.NewService(),
		overlayStack: overlay.NewStack(),
		view:         types.ParseView(cfg.Board.View),
		toasts:       []Toast{},
		styles:       styles.New(),
		config:       cfg,
		logger:       slog.Default(),
		now:          time.Now,
		loading:      true,
		spinner:      s,
		tracker:      reminder.NewTracker(cfg.DueNowWindow()),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.editor.SetShowCompleted(cfg.Board.ShowCompleted)
	m.weekStart = calendar.StartOfWeek(calendar.DateOf(m.now()))
	m.nav.SetDay(dayIndex(m.weekStart, calendar.DateOf(m.now())))
	return m
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadTasksCmd(),
	)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m.handleOverlayKey(msg)
		}
		return m.handleKey(msg)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		if m.editor.IsSearch() {
			m.editor.EnterNormal()
		}
		return m, nil

	case overlay.SelectionMsg:
		return m.handleSelection(msg)

	case overlay.SearchMsg:
		m.editor.SetSearchQuery(msg.Query)
		m.updateSearchCount()
		return m, nil

	case overlay.TaskSavedMsg:
		return m, m.saveTaskCmd(msg.Task, msg.IsNew)

	case overlay.ChecklistToggledMsg:
		return m, m.saveTaskCmd(msg.Task, false)

	case overlay.ListSelectedMsg:
		m.overlayStack.Pop()
		return m.switchList(msg.List)

	case tasksLoadedMsg:
		wasLoading := m.loading
		m.setTasks(msg.tasks)
		m.loading = false
		m.lastRefresh = m.now()
		if wasLoading {
			m.addToast(ToastSuccess, fmt.Sprintf("%d tasks loaded", len(msg.tasks)), 3*time.Second)
			m.fireReminders()
			return m, tickEvery(m.config.RefreshInterval())
		}
		return m, nil

	case tasksChangedMsg:
		m.setTasks(msg.tasks)
		m.lastRefresh = m.now()
		if msg.focusID != "" {
			m.nav.JumpToTaskByID(m.buildColumns(), msg.focusID)
		}
		if msg.message != "" {
			m.addToast(ToastSuccess, msg.message, 3*time.Second)
		}
		return m, nil

	case storeErrorMsg:
		m.logger.Error("store operation failed", "op", msg.op, "error", msg.err)
		m.addToast(ToastError, fmt.Sprintf("%s: %v", msg.op, msg.err), 8*time.Second)
		if m.loading {
			m.loading = false
			return m, tickEvery(m.config.RefreshInterval())
		}
		return m, nil

	case tickMsg:
		// Re-evaluate placement against a fresh now, expire toasts and fire
		// reminders. The board itself is rebuilt on every View.
		m.expireToasts()
		m.fireReminders()
		m.lastRefresh = m.now()
		return m, tickEvery(m.config.RefreshInterval())
	}

	return m, nil
}

// setTasks replaces the task list and drops selections of vanished tasks
func (m *Model) setTasks(tasks []domain.Task) {
	m.tasks = tasks
	m.editor.PruneSelection(tasks)
}

// fireReminders surfaces newly due reminders as toasts
func (m *Model) fireReminders() {
	if !m.config.Reminders.Enabled {
		return
	}
	for _, r := range m.tracker.Fire(m.tasks, m.now()) {
		m.lastReminder = &r
		m.logger.Info("reminder fired", "task_id", r.TaskID, "kind", r.Kind.String())
		m.addToast(ToastReminder, r.Message(), 10*time.Second)
	}
}

// snoozeLastReminder re-queues the most recent reminder
func (m *Model) snoozeLastReminder() {
	if m.lastReminder == nil {
		m.addToast(ToastInfo, "No reminder to snooze", 2*time.Second)
		return
	}
	d := m.config.SnoozeDuration()
	m.tracker.Snooze(*m.lastReminder, m.now(), d)
	m.addToast(ToastInfo, fmt.Sprintf("Snoozed %q for %d min", m.lastReminder.Title, int(d.Minutes())), 3*time.Second)
	m.lastReminder = nil
}

// switchList opens another registered task file
func (m Model) switchList(l config.List) (tea.Model, tea.Cmd) {
	if l.Path == m.storePath {
		return m, nil
	}
	if m.openStore == nil {
		m.addToast(ToastError, "List switching is not available", 3*time.Second)
		return m, nil
	}
	repo, err := m.openStore(l.Path)
	if err != nil {
		m.logger.Error("failed to open list", "list", l.Name, "path", l.Path, "error", err)
		m.addToast(ToastError, fmt.Sprintf("Open %s: %v", l.Name, err), 5*time.Second)
		return m, nil
	}
	m.logger.Info("switched list", "list", l.Name, "path", l.Path)
	m.repo = repo
	m.storePath = l.Path
	m.tasks = nil
	m.editor.ClearSelection()
	m.editor.ClearFilters()
	m.nav = navigation.NewService()
	m.addToast(ToastInfo, "Switched to "+l.Name, 2*time.Second)
	return m, m.loadTasksCmd()
}

// addToast appends a toast that expires after d
func (m *Model) addToast(level ToastLevel, message string, d time.Duration) {
	m.toasts = append(m.toasts, Toast{
		Level:   level,
		Message: message,
		Expires: m.now().Add(d),
	})
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	m.toasts = types.PruneToasts(m.toasts, m.now())
}

func dayIndex(weekStart, d calendar.Date) int {
	return calendar.DaysBetween(weekStart, d)
}
