package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/placement"
	"github.com/riordanpawley/aurora/internal/planner"
	"github.com/riordanpawley/aurora/internal/store"
)

// storeTimeout bounds every store round trip issued from the UI
const storeTimeout = 5 * time.Second

// Message types for async operations

type tasksLoadedMsg struct {
	tasks []domain.Task
}

// tasksChangedMsg carries the reloaded list after a write
type tasksChangedMsg struct {
	tasks   []domain.Task
	message string
	focusID string
}

type storeErrorMsg struct {
	op  string
	err error
}

type tickMsg time.Time

// Commands

// loadTasksCmd returns a command that reads every task from the store
func (m Model) loadTasksCmd() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		tasks, err := repo.List(ctx)
		if err != nil {
			return storeErrorMsg{op: "load tasks", err: err}
		}
		return tasksLoadedMsg{tasks: tasks}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// reload lists the store after a successful write
func reload(ctx context.Context, repo store.Repository, op, message, focusID string) tea.Msg {
	tasks, err := repo.List(ctx)
	if err != nil {
		return storeErrorMsg{op: op, err: err}
	}
	return tasksChangedMsg{tasks: tasks, message: message, focusID: focusID}
}

// updateTasksCmd applies fn to every task in ids as one read-modify-write
// each, then reloads. now is fixed when the command is built.
func (m Model) updateTasksCmd(op string, ids []string, message string, fn func(domain.Task, time.Time) domain.Task) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	repo, now, logger := m.repo, m.now(), m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		for _, id := range ids {
			_, err := repo.Update(ctx, id, func(t domain.Task) (domain.Task, error) {
				return fn(t, now), nil
			})
			if err != nil {
				return storeErrorMsg{op: op, err: err}
			}
			logger.Debug("task updated", "op", op, "task_id", id)
		}
		return reload(ctx, repo, op, message, ids[0])
	}
}

// completeTasksCmd completes open tasks and reopens done ones
func (m Model) completeTasksCmd(ids []string, message string) tea.Cmd {
	return m.updateTasksCmd("complete", ids, message, func(t domain.Task, now time.Time) domain.Task {
		if t.IsDone() {
			return planner.Reopen(t, now)
		}
		return planner.Complete(t, now)
	})
}

// moveTasksCmd pins each task delta columns away from where it is shown
func (m Model) moveTasksCmd(ids []string, delta int, message string) tea.Cmd {
	shown := m.asOf()
	return m.updateTasksCmd("move", ids, message, func(t domain.Task, _ time.Time) domain.Task {
		col := placement.EffectiveStatus(t, shown).Column() + delta
		col = max(0, min(col, len(domain.Statuses)-1))
		return planner.Move(t, domain.Statuses[col])
	})
}

// autoPlaceTasksCmd returns tasks to computed placement
func (m Model) autoPlaceTasksCmd(ids []string, message string) tea.Cmd {
	return m.updateTasksCmd("auto placement", ids, message, planner.UseAutoPlacement)
}

// deleteTasksCmd removes tasks and reloads
func (m Model) deleteTasksCmd(ids []string) tea.Cmd {
	if len(ids) == 0 {
		return nil
	}
	repo, logger := m.repo, m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		for _, id := range ids {
			if err := repo.Delete(ctx, id); err != nil {
				return storeErrorMsg{op: "delete", err: err}
			}
			logger.Info("task deleted", "task_id", id)
		}
		return reload(ctx, repo, "delete", fmt.Sprintf("Deleted %s", plural(len(ids), "task")), "")
	}
}

// saveTaskCmd runs the save path on a form result and stores it
func (m Model) saveTaskCmd(t domain.Task, isNew bool) tea.Cmd {
	repo, now, logger := m.repo, m.now(), m.logger
	return func() tea.Msg {
		prepared, err := planner.Prepare(t, now)
		if err != nil {
			return storeErrorMsg{op: "save task", err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := repo.Upsert(ctx, prepared); err != nil {
			return storeErrorMsg{op: "save task", err: err}
		}

		verb := "Saved"
		if isNew {
			verb = "Created"
		}
		logger.Info("task saved", "task_id", prepared.ID, "new", isNew)
		return reload(ctx, repo, "save task", fmt.Sprintf("%s %q", verb, prepared.Title), prepared.ID)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
