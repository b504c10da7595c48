package overlay

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formTask() domain.Task {
	t := domain.New(time.Date(2024, 4, 1, 8, 0, 0, 0, time.Local))
	t.ID = "t1"
	t.Title = "Water plants"
	t.NextDue = "2024-04-03"
	t.EndDate = "2024-04-03"
	t.Checklist = []domain.ChecklistItem{
		{ID: "c1", Text: "Balcony", Done: true},
		{ID: "c2", Text: "Kitchen"},
	}
	return t
}

func TestTaskForm_Prefill(t *testing.T) {
	task := formTask()
	task.Tags = []string{"home", "garden"}
	task.RemindBefore = []int{10, 30}
	task.Time = "07:15"
	f := NewTaskForm(task, false)

	assert.Equal(t, "Water plants", f.title.Value())
	assert.Equal(t, "2024-04-03", f.value(focusDue))
	assert.Empty(t, f.value(focusEnd), "single-day span leaves end empty")
	assert.Equal(t, "07:15", f.value(focusTime))
	assert.Equal(t, "home, garden", f.value(focusTags))
	assert.Equal(t, "10, 30", f.value(focusRemind))
	assert.Equal(t, "Balcony\nKitchen", f.checklist.Value())
	assert.Equal(t, "Edit Task", f.Title())
	assert.Equal(t, "New Task", NewTaskForm(task, true).Title())
}

func TestTaskForm_Build(t *testing.T) {
	f := NewTaskForm(formTask(), false)
	f.inputs[focusEnd].SetValue("2024-04-05")
	f.inputs[focusTime].SetValue("9:05")
	f.inputs[focusTags].SetValue("#home, plants, home")
	f.inputs[focusRemind].SetValue("15, 60")
	f.checklist.SetValue("Kitchen\nBalcony\n\nBathroom")

	got, err := f.Build()
	require.NoError(t, err)

	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, "2024-04-03", got.NextDue)
	assert.Equal(t, "2024-04-05", got.EndDate)
	assert.Equal(t, "09:05", got.Time)
	assert.Equal(t, []string{"home", "plants"}, got.Tags)
	assert.Equal(t, []int{15, 60}, got.RemindBefore)

	require.Len(t, got.Checklist, 3)
	assert.Equal(t, domain.ChecklistItem{ID: "c2", Text: "Kitchen"}, got.Checklist[0])
	assert.Equal(t, domain.ChecklistItem{ID: "c1", Text: "Balcony", Done: true}, got.Checklist[1])
	assert.Equal(t, "Bathroom", got.Checklist[2].Text)
	assert.NotEmpty(t, got.Checklist[2].ID)
	assert.False(t, got.Checklist[2].Done)
}

func TestTaskForm_BuildClearsDate(t *testing.T) {
	f := NewTaskForm(formTask(), false)
	f.inputs[focusDue].SetValue("")

	got, err := f.Build()
	require.NoError(t, err)
	assert.Empty(t, got.NextDue)
	assert.Empty(t, got.EndDate)
}

func TestTaskForm_BuildErrors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *TaskForm)
		want  string
	}{
		{"empty title", func(f *TaskForm) { f.title.SetValue("  ") }, "title is required"},
		{"bad due", func(f *TaskForm) { f.inputs[focusDue].SetValue("tomorrow") }, "due date"},
		{"bad end", func(f *TaskForm) { f.inputs[focusEnd].SetValue("2024-13-01") }, "end date"},
		{"end without due", func(f *TaskForm) {
			f.inputs[focusDue].SetValue("")
			f.inputs[focusEnd].SetValue("2024-04-05")
		}, "needs a due date"},
		{"bad time", func(f *TaskForm) { f.inputs[focusTime].SetValue("25:00") }, "time"},
		{"bad reminder", func(f *TaskForm) { f.inputs[focusRemind].SetValue("10, soon") }, "reminder"},
		{"zero reminder", func(f *TaskForm) { f.inputs[focusRemind].SetValue("0") }, "reminder"},
		{"interval too big", func(f *TaskForm) { f.inputs[focusInterval].SetValue("400") }, "interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTaskForm(formTask(), false)
			tt.setup(f)
			_, err := f.Build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTaskForm_SubmitShowsError(t *testing.T) {
	f := NewTaskForm(domain.New(time.Now()), true)

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd)
	assert.Contains(t, f.View(), "title is required")
}

func TestTaskForm_TypeAndSubmit(t *testing.T) {
	f := NewTaskForm(domain.New(time.Now()), true)

	for _, r := range "Call mum" {
		f.Update(runeKey(string(r)))
	}
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	msgs := drain(cmd)

	saved, ok := findMsg[TaskSavedMsg](msgs)
	require.True(t, ok)
	assert.True(t, saved.IsNew)
	assert.Equal(t, "Call mum", saved.Task.Title)
	assert.Equal(t, domain.PriorityMedium, saved.Task.Priority)

	_, closed := findMsg[CloseOverlayMsg](msgs)
	assert.True(t, closed)
}

func TestTaskForm_FocusCycle(t *testing.T) {
	f := NewTaskForm(formTask(), false)

	f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusSubmit, f.focus)

	f.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusTitle, f.focus)

	// enter on a single-line field advances
	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusNotes, f.focus)

	// enter inside notes is a newline, not a focus change
	f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, focusNotes, f.focus)
}

func TestTaskForm_PriorityAndRepeat(t *testing.T) {
	f := NewTaskForm(formTask(), false)

	f.setFocus(focusPriority)
	f.Update(runeKey("h"))
	assert.Equal(t, domain.PriorityHigh, f.priority)
	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, domain.PriorityLow, f.priority, "right wraps around")

	f.setFocus(focusRepeat)
	assert.NotContains(t, f.View(), "Every:")
	f.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, domain.RepeatDaily, f.repeat)
	assert.Contains(t, f.View(), "Every:")
	f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	f.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, domain.RepeatCustom, f.repeat)

	f.inputs[focusInterval].SetValue("3")
	got, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Equal(t, domain.RepeatCustom, got.Repeat)
	assert.Equal(t, 3, got.RepeatIntervalDays)
}

func TestTaskForm_Cancel(t *testing.T) {
	f := NewTaskForm(formTask(), false)
	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok := cmd().(CloseOverlayMsg)
	assert.True(t, ok)
}
