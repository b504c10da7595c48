package placement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riordanpawley/aurora/internal/domain"
)

func TestGroup(t *testing.T) {
	created := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: "old-today", NextDue: "2024-04-03", CreatedAt: created},
		{ID: "new-today", NextDue: "2024-04-02", CreatedAt: created.Add(time.Hour)},
		{ID: "upcoming", NextDue: "2024-04-05", CreatedAt: created},
		{ID: "backlog", CreatedAt: created},
		{ID: "pinned", NextDue: "2024-05-01", StatusMode: domain.ModeManual, Status: domain.StatusToday, CreatedAt: created.Add(-time.Hour)},
		{ID: "done", Status: domain.StatusDone, StatusMode: domain.ModeManual, CreatedAt: created},
		{ID: "weird", StatusMode: domain.ModeManual, Status: "archived", CreatedAt: created},
	}

	b := Group(tasks, now)

	assert.Equal(t, []string{"new-today", "old-today", "weird", "pinned"}, taskIDs(b.Column(domain.StatusToday)))
	assert.Equal(t, []string{"upcoming"}, taskIDs(b.Column(domain.StatusUpcoming)))
	assert.Equal(t, []string{"backlog"}, taskIDs(b.Column(domain.StatusBacklog)))
	assert.Equal(t, []string{"done"}, taskIDs(b.Column(domain.StatusDone)))
	assert.Equal(t, []int{4, 1, 1, 1}, b.Counts())
	assert.Equal(t, len(tasks), b.Len())
}

func TestGroup_Empty(t *testing.T) {
	b := Group(nil, now)
	assert.Equal(t, []int{0, 0, 0, 0}, b.Counts())
	assert.Len(t, b.Columns, 4)
}

func taskIDs(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}
