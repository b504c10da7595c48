package statusbar

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/riordanpawley/aurora/internal/types"
	"github.com/riordanpawley/aurora/internal/ui/styles"
)

func TestStatusBar_RenderNormalMode(t *testing.T) {
	style := styles.New()
	sb := New(types.ModeNormal, 120, style)

	result := ansi.Strip(sb.Render())

	if !strings.Contains(result, "NORMAL") {
		t.Errorf("Expected status bar to contain 'NORMAL', got: %s", result)
	}
	if !strings.Contains(result, "Kanban") {
		t.Errorf("Expected status bar to contain view label, got: %s", result)
	}
	if !strings.Contains(result, "h/l: columns") {
		t.Errorf("Expected status bar to contain navigation hints, got: %s", result)
	}
}

func TestStatusBar_RenderCalendarView(t *testing.T) {
	style := styles.New()
	sb := New(types.ModeNormal, 160, style).WithView(types.ViewCalendar).WithInfo("Week of Apr 1")

	result := ansi.Strip(sb.Render())

	if !strings.Contains(result, "Calendar") {
		t.Errorf("Expected status bar to contain 'Calendar', got: %s", result)
	}
	if !strings.Contains(result, "[/]: week") {
		t.Errorf("Expected status bar to contain week navigation hint, got: %s", result)
	}
	if !strings.Contains(result, "Week of Apr 1") {
		t.Errorf("Expected status bar to contain info, got: %s", result)
	}
}

func TestStatusBar_RenderSelectMode(t *testing.T) {
	style := styles.New()
	sb := New(types.ModeSelect, 120, style)

	result := ansi.Strip(sb.Render())

	if !strings.Contains(result, "SELECT") {
		t.Errorf("Expected status bar to contain 'SELECT', got: %s", result)
	}
	if !strings.Contains(result, "Space: toggle") {
		t.Errorf("Expected status bar to contain toggle hint, got: %s", result)
	}
}

func TestStatusBar_SingleLine(t *testing.T) {
	style := styles.New()
	sb := New(types.ModeNormal, 40, style).WithInfo(strings.Repeat("x", 100))

	if lines := strings.Count(sb.Render(), "\n"); lines != 0 {
		t.Errorf("status bar should render on one line, got %d newlines", lines)
	}
}

func TestGetHints(t *testing.T) {
	tests := []struct {
		name     string
		mode     types.Mode
		view     types.View
		contains string
	}{
		{"normal kanban", types.ModeNormal, types.ViewKanban, "H/L: move"},
		{"normal split", types.ModeNormal, types.ViewSplit, "[/]: week"},
		{"goto", types.ModeGoto, types.ViewKanban, "g: top"},
		{"search", types.ModeSearch, types.ViewCalendar, "Enter: confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetHints(tt.mode, tt.view)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("GetHints() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}

	if got := GetHints(types.Mode(99), types.ViewKanban); got != "" {
		t.Errorf("unknown mode should have no hints, got %q", got)
	}
}
