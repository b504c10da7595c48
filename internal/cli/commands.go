// Package cli implements the non-interactive aurora subcommands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/riordanpawley/aurora/internal/calendar"
	"github.com/riordanpawley/aurora/internal/config"
	"github.com/riordanpawley/aurora/internal/domain"
	"github.com/riordanpawley/aurora/internal/ics"
	"github.com/riordanpawley/aurora/internal/layout"
	"github.com/riordanpawley/aurora/internal/placement"
	"github.com/riordanpawley/aurora/internal/planner"
	"github.com/riordanpawley/aurora/internal/store"
)

const commandTimeout = 5 * time.Second

// ErrAmbiguousID is returned when an ID prefix matches more than one task
var ErrAmbiguousID = errors.New("ambiguous task id")

// Dependencies holds all the services needed for CLI commands
type Dependencies struct {
	Config       *config.Config
	Store        *store.FileStore
	Registry     *config.ListsRegistry
	SaveRegistry func(*config.ListsRegistry) error
	Logger       *slog.Logger
	Now          func() time.Time
	Out          io.Writer
}

// NewDependencies wires the CLI to an opened store
func NewDependencies(cfg *config.Config, s *store.FileStore, reg *config.ListsRegistry, logger *slog.Logger, now func() time.Time) *Dependencies {
	return &Dependencies{
		Config:       cfg,
		Store:        s,
		Registry:     reg,
		SaveRegistry: config.SaveListsRegistry,
		Logger:       logger,
		Now:          now,
		Out:          os.Stdout,
	}
}

// Run dispatches args[0] to its command
func Run(ctx context.Context, deps *Dependencies, args []string) error {
	if len(args) == 0 {
		PrintUsage(deps.Out)
		return nil
	}
	cmd, rest := args[0], args[1:]

	need := func(n int, usage string) error {
		if len(rest) < n {
			return fmt.Errorf("usage: aurora %s", usage)
		}
		return nil
	}

	switch cmd {
	case "list", "ls":
		status := ""
		if len(rest) > 0 {
			status = rest[0]
		}
		return ListCommand(ctx, deps, status)
	case "complete", "done":
		if err := need(1, "complete <id>"); err != nil {
			return err
		}
		return CompleteCommand(ctx, deps, rest[0])
	case "move":
		if err := need(2, "move <id> <backlog|today|upcoming|done>"); err != nil {
			return err
		}
		return MoveCommand(ctx, deps, rest[0], rest[1])
	case "auto":
		if err := need(1, "auto <id>"); err != nil {
			return err
		}
		return AutoCommand(ctx, deps, rest[0])
	case "week":
		date := ""
		if len(rest) > 0 {
			date = rest[0]
		}
		return WeekCommand(ctx, deps, date)
	case "export":
		if err := need(1, "export <file> [json|yaml]"); err != nil {
			return err
		}
		format := ""
		if len(rest) > 1 {
			format = rest[1]
		}
		return ExportCommand(ctx, deps, rest[0], format)
	case "import":
		if err := need(1, "import <file> [json|yaml]"); err != nil {
			return err
		}
		format := ""
		if len(rest) > 1 {
			format = rest[1]
		}
		return ImportCommand(ctx, deps, rest[0], format)
	case "ics":
		if err := need(1, "ics <id|all> [file]"); err != nil {
			return err
		}
		out := ""
		if len(rest) > 1 {
			out = rest[1]
		}
		return ICSCommand(ctx, deps, rest[0], out)
	case "lists":
		return ListsCommand(deps, rest)
	case "help", "-h", "--help":
		PrintUsage(deps.Out)
		return nil
	default:
		return fmt.Errorf("unknown command: %s (run 'aurora help')", cmd)
	}
}

// ListCommand prints the board as a table, optionally limited to one column
func ListCommand(ctx context.Context, deps *Dependencies, status string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	statuses := domain.Statuses
	if status != "" {
		s, ok := domain.ParseStatus(status)
		if !ok {
			return fmt.Errorf("unknown status %q (want backlog, today, upcoming or done)", status)
		}
		statuses = []domain.Status{s}
	}

	tasks, err := deps.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	now := deps.Now()
	board := placement.Group(tasks, now)
	deps.Logger.Info("listing tasks", "count", len(tasks), "status", status)

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRI\tDUE\tTITLE")
	fmt.Fprintln(w, "--\t------\t---\t---\t-----")
	shown := 0
	for _, s := range statuses {
		for _, t := range board.Column(s) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", shortID(t.ID), statusLabel(t, now), t.Priority.Short(), dueLabel(t), truncate(t.Title, 60))
			shown++
		}
	}
	w.Flush()

	if shown == 0 {
		fmt.Fprintln(deps.Out, "\nNo tasks")
	}
	return nil
}

// CompleteCommand completes a task; repeating tasks advance to their next
// occurrence
func CompleteCommand(ctx context.Context, deps *Dependencies, id string) error {
	deps.Logger.Info("completing task", "task_id", id)
	t, err := updateTask(ctx, deps, id, func(t domain.Task, now time.Time) domain.Task {
		return planner.Complete(t, now)
	})
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	if t.Repeat.IsRecurring() {
		fmt.Fprintf(deps.Out, "✓ Completed %q, next due %s\n", t.Title, t.NextDue)
		return nil
	}
	fmt.Fprintf(deps.Out, "✓ Completed %q\n", t.Title)
	return nil
}

// MoveCommand pins a task to a column
func MoveCommand(ctx context.Context, deps *Dependencies, id, status string) error {
	to, ok := domain.ParseStatus(status)
	if !ok {
		return fmt.Errorf("unknown status %q (want backlog, today, upcoming or done)", status)
	}

	deps.Logger.Info("moving task", "task_id", id, "status", to)
	t, err := updateTask(ctx, deps, id, func(t domain.Task, _ time.Time) domain.Task {
		return planner.Move(t, to)
	})
	if err != nil {
		return fmt.Errorf("failed to move task: %w", err)
	}

	fmt.Fprintf(deps.Out, "✓ Moved %q to %s (pinned)\n", t.Title, to.Title())
	return nil
}

// AutoCommand returns a task to automatic placement
func AutoCommand(ctx context.Context, deps *Dependencies, id string) error {
	deps.Logger.Info("auto placing task", "task_id", id)
	t, err := updateTask(ctx, deps, id, planner.UseAutoPlacement)
	if err != nil {
		return fmt.Errorf("failed to auto place task: %w", err)
	}

	fmt.Fprintf(deps.Out, "✓ %q is now auto placed in %s\n", t.Title, placement.EffectiveStatus(t, deps.Now()).Title())
	return nil
}

// WeekCommand prints the lanes of the week containing date, or the current
// week when date is empty
func WeekCommand(ctx context.Context, deps *Dependencies, date string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	now := deps.Now()
	day := calendar.DateOf(now)
	if date != "" {
		day = calendar.ParseISOIn(date, now.Location())
		if !day.Valid() {
			return fmt.Errorf("date %q is not YYYY-MM-DD", date)
		}
	}

	tasks, err := deps.Store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	days := layout.WeekDays(day)
	lanes := layout.WeekLanes(day, tasks)
	deps.Logger.Info("rendering week", "week_start", days[0].ISO(), "lanes", len(lanes))

	fmt.Fprintf(deps.Out, "Week of %s\n\n", days[0].Time().Format("Mon Jan 2 2006"))
	for col, d := range days {
		marker := " "
		if d.Equal(calendar.DateOf(now)) {
			marker = "*"
		}
		fmt.Fprintf(deps.Out, "%s %s\n", marker, d.Time().Format("Mon Jan 2"))
		for _, lane := range lanes {
			seg, ok := lane.At(col)
			if !ok {
				continue
			}
			fmt.Fprintf(deps.Out, "    %s %s\n", spanMark(seg, col), seg.Task.Title)
		}
	}
	if len(lanes) == 0 {
		fmt.Fprintln(deps.Out, "\nNothing scheduled this week")
	}
	return nil
}

// ExportCommand writes a backup of every task to path
func ExportCommand(ctx context.Context, deps *Dependencies, path, format string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	f, err := store.FormatFor(path, format)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer out.Close()

	show := deps.Config.Board.ShowCompleted
	prefs := &store.Prefs{View: deps.Config.Board.View, ShowCompleted: &show}
	if err := deps.Store.Export(ctx, out, f, prefs); err != nil {
		return fmt.Errorf("failed to export tasks: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(deps.Out, "✓ Exported tasks to %s\n", path)
	return nil
}

// ImportCommand merges a backup into the store
func ImportCommand(ctx context.Context, deps *Dependencies, path, format string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	f, err := store.FormatFor(path, format)
	if err != nil {
		return err
	}

	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	res, err := deps.Store.Import(ctx, in, f)
	if err != nil {
		return fmt.Errorf("failed to import tasks: %w", err)
	}

	fmt.Fprintf(deps.Out, "✓ Imported %s", plural(res.Imported, "task"))
	if res.Skipped > 0 {
		fmt.Fprintf(deps.Out, ", skipped %d invalid", res.Skipped)
	}
	fmt.Fprintln(deps.Out)
	return nil
}

// ICSCommand writes a calendar file for one task, or for every dated task
// when id is "all". An empty outPath writes to the command output.
func ICSCommand(ctx context.Context, deps *Dependencies, id, outPath string) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	now := deps.Now()
	var body string
	if id == "all" {
		tasks, err := deps.Store.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		var n int
		body, n = ics.BuildCalendarICS(tasks, now)
		deps.Logger.Info("exporting calendar", "events", n)
	} else {
		t, err := findTask(ctx, deps, id)
		if err != nil {
			return err
		}
		body, err = ics.BuildTaskICS(t, now)
		if err != nil {
			return fmt.Errorf("failed to build calendar entry: %w", err)
		}
		deps.Logger.Info("exporting calendar entry", "task_id", t.ID)
	}

	if outPath == "" {
		_, err := io.WriteString(deps.Out, body)
		return err
	}
	if err := os.WriteFile(outPath, []byte(body), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	fmt.Fprintf(deps.Out, "✓ Wrote %s\n", outPath)
	return nil
}

// ListsCommand manages the named task files
func ListsCommand(deps *Dependencies, args []string) error {
	reg := deps.Registry
	if reg == nil {
		return errors.New("lists registry is not available")
	}

	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}

	var err error
	switch sub {
	case "show":
		return printLists(deps)
	case "add":
		if len(args) < 3 {
			return errors.New("usage: aurora lists add <name> <path>")
		}
		err = reg.Add(args[1], args[2])
	case "remove", "rm":
		if len(args) < 2 {
			return errors.New("usage: aurora lists remove <name>")
		}
		err = reg.Remove(args[1])
	case "default":
		if len(args) < 2 {
			return errors.New("usage: aurora lists default <name>")
		}
		err = reg.SetDefault(args[1])
	default:
		return fmt.Errorf("unknown lists command: %s", sub)
	}
	if err != nil {
		return fmt.Errorf("failed to %s list: %w", sub, err)
	}

	if err := deps.SaveRegistry(reg); err != nil {
		return fmt.Errorf("failed to save lists: %w", err)
	}
	deps.Logger.Info("updated lists", "command", sub, "count", len(reg.Lists))
	return printLists(deps)
}

func printLists(deps *Dependencies) error {
	reg := deps.Registry
	if len(reg.Lists) == 0 {
		fmt.Fprintln(deps.Out, "No lists registered (use 'aurora lists add <name> <path>')")
		return nil
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tNAME\tPATH")
	for _, l := range reg.Lists {
		mark := ""
		if l.Name == reg.DefaultList {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", mark, l.Name, l.Path)
	}
	return w.Flush()
}

// findTask resolves id as an exact ID or a unique prefix of one
func findTask(ctx context.Context, deps *Dependencies, id string) (domain.Task, error) {
	tasks, err := deps.Store.List(ctx)
	if err != nil {
		return domain.Task{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	var matches []domain.Task
	for _, t := range tasks {
		if t.ID == id {
			return t, nil
		}
		if strings.HasPrefix(t.ID, id) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Task{}, fmt.Errorf("task %s: %w", id, domain.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return domain.Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousID, id, len(matches))
	}
}

func updateTask(ctx context.Context, deps *Dependencies, id string, fn func(domain.Task, time.Time) domain.Task) (domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	t, err := findTask(ctx, deps, id)
	if err != nil {
		return domain.Task{}, err
	}
	now := deps.Now()
	return deps.Store.Update(ctx, t.ID, func(cur domain.Task) (domain.Task, error) {
		return planner.Prepare(fn(cur, now), now)
	})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusLabel(t domain.Task, now time.Time) string {
	s := string(placement.EffectiveStatus(t, now))
	if t.StatusMode.IsManual() {
		s += "*"
	}
	if placement.IsOverdue(t, now) {
		s += "!"
	}
	return s
}

func dueLabel(t domain.Task) string {
	if t.NextDue == "" {
		return "-"
	}
	s := t.NextDue
	if end := t.SpanEnd(); end != "" && end != t.NextDue {
		s += ".." + end
	}
	if t.Time != "" {
		s += " " + t.Time
	}
	return s
}

// spanMark shows whether a multi-day span continues into or past col
func spanMark(seg layout.Segment, col int) string {
	starts := seg.IsSpanStart && col == seg.Column
	ends := seg.IsSpanEnd && col == seg.LastColumn()
	switch {
	case starts && ends:
		return "•"
	case starts:
		return "┌"
	case ends:
		return "└"
	default:
		return "│"
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// PrintUsage prints CLI usage information
func PrintUsage(w io.Writer) {
	usage := `Usage: aurora [--list name] [command] [arguments]

Commands:
  (no command)                 Start the Aurora TUI
  list [status]                List tasks by column (backlog, today, upcoming, done)
  complete <id>                Complete a task (repeating tasks advance)
  move <id> <status>           Pin a task to a column
  auto <id>                    Return a task to automatic placement
  week [YYYY-MM-DD]            Show the week containing a date
  export <file> [json|yaml]    Write a backup of every task
  import <file> [json|yaml]    Merge a backup into the current list
  ics <id|all> [file]          Export calendar events
  lists [add|remove|default]   Manage named task lists
  help                         Show this help message

Task IDs may be shortened to any unique prefix.

Examples:
  aurora                       # Start TUI
  aurora list today            # Show today's tasks
  aurora complete 3f2a         # Complete the task whose ID starts with 3f2a
  aurora week 2024-04-01       # Show that week's lanes
  aurora ics all tasks.ics     # Export every dated task
  aurora lists add work ~/work.yaml
`
	fmt.Fprint(w, usage)
}
