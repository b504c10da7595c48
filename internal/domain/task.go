// Package domain contains the task model shared by every Aurora package.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a single to-do or reminder
type Task struct {
	ID                 string          `json:"id" yaml:"id" validate:"required"`
	Title              string          `json:"title" yaml:"title" validate:"required"`
	Notes              string          `json:"notes,omitempty" yaml:"notes,omitempty"`
	Status             Status          `json:"status" yaml:"status" validate:"omitempty,oneof=today upcoming backlog done"`
	StatusMode         StatusMode      `json:"statusMode,omitempty" yaml:"statusMode,omitempty" validate:"omitempty,oneof=auto manual"`
	Priority           Priority        `json:"priority" yaml:"priority" validate:"oneof=low medium high"`
	Tags               []string        `json:"tags,omitempty" yaml:"tags,omitempty" validate:"dive,required"`
	NextDue            string          `json:"nextDue,omitempty" yaml:"nextDue,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate            string          `json:"endDate,omitempty" yaml:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time               string          `json:"time,omitempty" yaml:"time,omitempty" validate:"omitempty,datetime=15:04"`
	RemindBefore       []int           `json:"remindBefore,omitempty" yaml:"remindBefore,omitempty" validate:"dive,min=1"`
	Repeat             Repeat          `json:"repeat" yaml:"repeat" validate:"oneof=none daily weekly weekdays monthly monthly-nth custom"`
	RepeatIntervalDays int             `json:"repeatIntervalDays" yaml:"repeatIntervalDays" validate:"min=1,max=365"`
	RepeatWeekday      *int            `json:"repeatWeekday,omitempty" yaml:"repeatWeekday,omitempty" validate:"omitempty,min=0,max=6"`
	RepeatNth          int             `json:"repeatNth,omitempty" yaml:"repeatNth,omitempty" validate:"oneof=0 1 2 3 4 -1"`
	CreatedAt          time.Time       `json:"createdAt" yaml:"createdAt"`
	LastCompletedAt    *time.Time      `json:"lastCompletedAt,omitempty" yaml:"lastCompletedAt,omitempty"`
	Checklist          []ChecklistItem `json:"checklist,omitempty" yaml:"checklist,omitempty" validate:"dive"`
}

// ChecklistItem is an ordered sub-item of a task
type ChecklistItem struct {
	ID   string `json:"id" yaml:"id" validate:"required"`
	Text string `json:"text" yaml:"text"`
	Done bool   `json:"done" yaml:"done"`
}

// Status is the workflow column a task is shown in
type Status string

const (
	StatusToday    Status = "today"
	StatusUpcoming Status = "upcoming"
	StatusBacklog  Status = "backlog"
	StatusDone     Status = "done"
)

// Statuses lists the columns in board order
var Statuses = []Status{StatusToday, StatusUpcoming, StatusBacklog, StatusDone}

// Column returns the kanban column index for this status
func (s Status) Column() int {
	switch s {
	case StatusToday:
		return 0
	case StatusUpcoming:
		return 1
	case StatusBacklog:
		return 2
	case StatusDone:
		return 3
	default:
		return 0
	}
}

// Title returns the column heading
func (s Status) Title() string {
	switch s {
	case StatusToday:
		return "Today"
	case StatusUpcoming:
		return "Upcoming"
	case StatusBacklog:
		return "Backlog"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

func (s Status) String() string {
	return string(s)
}

// ParseStatus accepts a column name, case-sensitive
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// StatusMode selects between computed and user-pinned placement
type StatusMode string

const (
	ModeAuto   StatusMode = "auto"
	ModeManual StatusMode = "manual"
)

// IsManual reports whether the stored status governs placement.
// Empty and unknown values are treated as auto.
func (m StatusMode) IsManual() bool {
	return m == ModeManual
}

// Priority is a task's urgency
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists priorities from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Rank orders priorities, higher is more urgent
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// Short returns single character representation
func (p Priority) Short() string {
	switch p {
	case PriorityHigh:
		return "H"
	case PriorityMedium:
		return "M"
	case PriorityLow:
		return "L"
	default:
		return "?"
	}
}

func (p Priority) String() string {
	return string(p)
}

// Repeat is a recurrence rule
type Repeat string

const (
	RepeatNone       Repeat = "none"
	RepeatDaily      Repeat = "daily"
	RepeatWeekly     Repeat = "weekly"
	RepeatWeekdays   Repeat = "weekdays"
	RepeatMonthly    Repeat = "monthly"
	RepeatMonthlyNth Repeat = "monthly-nth"
	RepeatCustom     Repeat = "custom"
)

// Repeats lists every rule in menu order
var Repeats = []Repeat{RepeatNone, RepeatDaily, RepeatWeekdays, RepeatWeekly, RepeatMonthly, RepeatMonthlyNth, RepeatCustom}

// IsRecurring reports whether completion advances the task instead of closing it
func (r Repeat) IsRecurring() bool {
	return r != RepeatNone && r != ""
}

func (r Repeat) String() string {
	return string(r)
}

// Interval bounds for RepeatIntervalDays
const (
	MinInterval = 1
	MaxInterval = 365
)

// NewID returns a fresh opaque identifier
func NewID() string {
	return uuid.NewString()
}

// New returns a task with creation defaults
func New(now time.Time) Task {
	return Task{
		ID:                 NewID(),
		Status:             StatusToday,
		StatusMode:         ModeAuto,
		Priority:           PriorityMedium,
		Repeat:             RepeatNone,
		RepeatIntervalDays: 1,
		CreatedAt:          now,
	}
}

// IsDone reports whether the task is pinned to the done column
func (t Task) IsDone() bool {
	return t.Status == StatusDone
}

// SpanEnd returns EndDate, or NextDue for single-day tasks
func (t Task) SpanEnd() string {
	if t.EndDate == "" {
		return t.NextDue
	}
	return t.EndDate
}

// Clone returns a deep copy so callers may mutate slices freely
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	if t.RemindBefore != nil {
		c.RemindBefore = append([]int(nil), t.RemindBefore...)
	}
	if t.Checklist != nil {
		c.Checklist = append([]ChecklistItem(nil), t.Checklist...)
	}
	if t.RepeatWeekday != nil {
		wd := *t.RepeatWeekday
		c.RepeatWeekday = &wd
	}
	if t.LastCompletedAt != nil {
		at := *t.LastCompletedAt
		c.LastCompletedAt = &at
	}
	return c
}

// ChecklistProgress returns done and total checklist counts
func (t Task) ChecklistProgress() (done, total int) {
	for _, item := range t.Checklist {
		if item.Done {
			done++
		}
	}
	return done, len(t.Checklist)
}

// IntPtr is a helper for optional int fields
func IntPtr(v int) *int {
	return &v
}
