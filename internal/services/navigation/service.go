// Package navigation tracks the board and week cursors
package navigation

import (
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/layout"
	"github.com/riordanpawley/aurora/internal/ui/board"
	"github.com/riordanpawley/aurora/internal/ui/week"
)

// Position represents a computed position in the board
type Position struct {
	Column int  // 0=Today, 1=Upcoming, 2=Backlog, 3=Done
	Task   int  // Index within the column
	Valid  bool // Whether the position is valid
}

// Cursor tracks the selected task by ID so it follows the task when the
// board regroups on a tick, a filter change or a move.
type Cursor struct {
	TaskID         string // Primary state: selected task ID
	FallbackColumn int    // Column to use when TaskID not found
}

// FindPosition computes the position of the cursor's task in the given columns
func (c *Cursor) FindPosition(columns []board.Column) Position {
	if c.TaskID != "" {
		for colIdx, col := range columns {
			for taskIdx, task := range col.Tasks {
				if task.ID == c.TaskID {
					return Position{Column: colIdx, Task: taskIdx, Valid: true}
				}
			}
		}
	}

	// No task selected, or it was filtered out or deleted
	col := c.FallbackColumn
	if col < 0 || col >= len(columns) {
		col = 0
	}
	if col < len(columns) && len(columns[col].Tasks) > 0 {
		return Position{Column: col, Task: 0, Valid: true}
	}
	return Position{Column: col, Task: 0, Valid: false}
}

// SetTask updates the cursor to point to a specific task
func (c *Cursor) SetTask(taskID string, column int) {
	c.TaskID = taskID
	c.FallbackColumn = column
}

// MoveVertical moves up or down within a column, returns new task ID
func (c *Cursor) MoveVertical(columns []board.Column, delta int) string {
	pos := c.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return c.TaskID
	}

	col := columns[pos.Column]
	newIdx := max(0, min(pos.Task+delta, len(col.Tasks)-1))
	c.TaskID = col.Tasks[newIdx].ID
	c.FallbackColumn = pos.Column
	return c.TaskID
}

// MoveHorizontal moves left or right to adjacent column
func (c *Cursor) MoveHorizontal(columns []board.Column, delta int) string {
	pos := c.FindPosition(columns)
	return c.JumpToColumn(columns, pos.Column+delta)
}

// JumpToStart moves to first task in current column
func (c *Cursor) JumpToStart(columns []board.Column) string {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) && len(columns[pos.Column].Tasks) > 0 {
		c.TaskID = columns[pos.Column].Tasks[0].ID
	}
	return c.TaskID
}

// JumpToEnd moves to last task in current column
func (c *Cursor) JumpToEnd(columns []board.Column) string {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) {
		col := columns[pos.Column]
		if len(col.Tasks) > 0 {
			c.TaskID = col.Tasks[len(col.Tasks)-1].ID
		}
	}
	return c.TaskID
}

// JumpToColumn moves to a specific column, keeping relative row position
func (c *Cursor) JumpToColumn(columns []board.Column, colIdx int) string {
	if len(columns) == 0 {
		return c.TaskID
	}
	colIdx = max(0, min(colIdx, len(columns)-1))

	pos := c.FindPosition(columns)
	c.FallbackColumn = colIdx

	if len(columns[colIdx].Tasks) > 0 {
		taskIdx := min(pos.Task, len(columns[colIdx].Tasks)-1)
		c.TaskID = columns[colIdx].Tasks[taskIdx].ID
	} else {
		c.TaskID = "" // No task in target column
	}
	return c.TaskID
}

// Service manages navigation state for the kanban board and the week view
type Service struct {
	cursor Cursor
	week   week.Cursor
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// GetPosition returns the computed position of the cursor in the given columns
func (s *Service) GetPosition(columns []board.Column) Position {
	return s.cursor.FindPosition(columns)
}

// GetCurrentTask returns the task under the board cursor, or nil
func (s *Service) GetCurrentTask(columns []board.Column) *domain.Task {
	pos := s.cursor.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return nil
	}

	col := columns[pos.Column]
	if pos.Task >= len(col.Tasks) {
		return nil
	}

	task := col.Tasks[pos.Task]
	return &task
}

// GetCurrentStatus returns the status for the current column
func (s *Service) GetCurrentStatus(columns []board.Column) domain.Status {
	pos := s.cursor.FindPosition(columns)
	if pos.Column < len(columns) && columns[pos.Column].Status != "" {
		return columns[pos.Column].Status
	}
	if pos.Column < 0 || pos.Column >= len(domain.Statuses) {
		return domain.StatusToday
	}
	return domain.Statuses[pos.Column]
}

// MoveDown moves cursor down in current column
func (s *Service) MoveDown(columns []board.Column) {
	s.cursor.MoveVertical(columns, 1)
}

// MoveUp moves cursor up in current column
func (s *Service) MoveUp(columns []board.Column) {
	s.cursor.MoveVertical(columns, -1)
}

// MoveLeft moves cursor to left column
func (s *Service) MoveLeft(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, -1)
}

// MoveRight moves cursor to right column
func (s *Service) MoveRight(columns []board.Column) {
	s.cursor.MoveHorizontal(columns, 1)
}

// HalfPageDown moves cursor half a page down
func (s *Service) HalfPageDown(columns []board.Column, halfPage int) {
	s.cursor.MoveVertical(columns, halfPage)
}

// HalfPageUp moves cursor half a page up
func (s *Service) HalfPageUp(columns []board.Column, halfPage int) {
	s.cursor.MoveVertical(columns, -halfPage)
}

// GotoTop moves cursor to first task in column
func (s *Service) GotoTop(columns []board.Column) {
	s.cursor.JumpToStart(columns)
}

// GotoBottom moves cursor to last task in column
func (s *Service) GotoBottom(columns []board.Column) {
	s.cursor.JumpToEnd(columns)
}

// GotoFirstColumn moves cursor to first column
func (s *Service) GotoFirstColumn(columns []board.Column) {
	s.cursor.JumpToColumn(columns, 0)
}

// GotoLastColumn moves cursor to last column
func (s *Service) GotoLastColumn(columns []board.Column) {
	s.cursor.JumpToColumn(columns, len(columns)-1)
}

// SelectTask directly sets the cursor to a specific task
func (s *Service) SelectTask(taskID string, column int) {
	s.cursor.SetTask(taskID, column)
}

// JumpToTaskByID finds and selects a task by ID
func (s *Service) JumpToTaskByID(columns []board.Column, taskID string) bool {
	for colIdx, col := range columns {
		for _, task := range col.Tasks {
			if task.ID == taskID {
				s.cursor.SetTask(task.ID, colIdx)
				return true
			}
		}
	}
	return false
}

// Week view

// GetWeekCursor returns the week view cursor clamped to w
func (s *Service) GetWeekCursor(w week.Week) week.Cursor {
	s.clampWeek(w)
	return s.week
}

// MoveDay moves the week cursor by delta days within the week
func (s *Service) MoveDay(w week.Week, delta int) {
	s.week.Day += delta
	s.clampWeek(w)
}

// MoveLane moves the week cursor by delta lanes
func (s *Service) MoveLane(w week.Week, delta int) {
	s.week.Lane += delta
	s.clampWeek(w)
}

// SetDay places the week cursor on a weekday column, 0 = Monday
func (s *Service) SetDay(day int) {
	s.week.Day = max(0, min(day, layout.DaysPerWeek-1))
}

// GetWeekTask returns the task under the week cursor, or nil
func (s *Service) GetWeekTask(w week.Week) *domain.Task {
	task, ok := w.TaskAt(s.GetWeekCursor(w))
	if !ok {
		return nil
	}
	return &task
}

func (s *Service) clampWeek(w week.Week) {
	s.week.Day = max(0, min(s.week.Day, layout.DaysPerWeek-1))
	s.week.Lane = max(0, min(s.week.Lane, len(w.Lanes)-1))
}
