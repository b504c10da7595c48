// Package main provides the entry point for Aurora, a terminal task planner
// with an auto-placing kanban board and a week calendar.
//
// Usage:
//
//	aurora [--list name] [command] [arguments]
//
// Without a command the interactive board starts. Run "aurora help" for the
// command list.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/aurora/internal/app"
	"github.com/riordanpawley/aurora/internal/cli"
	"github.com/riordanpawley/aurora/internal/config"
	"github.com/riordanpawley/aurora/internal/logging"
	"github.com/riordanpawley/aurora/internal/planner"
	"github.com/riordanpawley/aurora/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	listName := flag.String("list", "", "named task list to open")
	flag.Usage = func() { cli.PrintUsage(os.Stderr) }
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	now := func() time.Time { return time.Now().In(loc) }

	registry, err := config.LoadListsRegistry()
	if err != nil {
		return fmt.Errorf("failed to load lists: %w", err)
	}
	if err := registry.Resolve(cfg, *listName); err != nil {
		return fmt.Errorf("failed to open list %q: %w", *listName, err)
	}

	open := func(path string) (*store.FileStore, error) {
		opts := []store.Option{store.WithLogger(logger), store.WithClock(now)}
		if cfg.Store.Format != "" {
			f, err := store.ParseFormat(cfg.Store.Format)
			if err != nil {
				return nil, err
			}
			opts = append(opts, store.WithFormat(f))
		}
		return store.NewFileStore(path, opts...)
	}

	repo, err := open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("failed to open task file: %w", err)
	}
	if cfg.Store.SeedSamples {
		seeded, err := repo.Seed(context.Background(), planner.SampleTasks(now()))
		if err != nil {
			return fmt.Errorf("failed to seed tasks: %w", err)
		}
		if seeded {
			logger.Info("created task file with samples", "path", repo.Path())
		}
	}

	if args := flag.Args(); len(args) > 0 {
		deps := cli.NewDependencies(cfg, repo, registry, logger, now)
		return cli.Run(context.Background(), deps, args)
	}

	opener := func(path string) (store.Repository, error) {
		s, err := open(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	}

	logger.Info("starting aurora", "store", repo.Path(), "view", cfg.Board.View)
	model := app.New(cfg, repo,
		app.WithLogger(logger),
		app.WithClock(now),
		app.WithLists(registry, repo.Path(), opener),
	)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
