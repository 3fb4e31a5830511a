// Command infopanel-preview renders the info panel in the terminal from
// payload fixtures.
//
// Usage:
//
//	infopanel-preview [flags]
//
// Flags:
//
//	-fixtures string  Glob of fixture files (default: testdata/**/*.{yaml,yml,json})
//	-watch            Reload fixtures when they change
//	-log string       Path of a log file (default: no logging)
//	-set path=value   Override a value in every fixture (repeatable)
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	bt "github.com/fwojciec/infopanel/bubbletea"
	"github.com/fwojciec/infopanel/fixture"
)

const defaultFixtures = "testdata/**/*.{yaml,yml,json}"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "infopanel-preview: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		pattern = flag.String("fixtures", defaultFixtures, "Glob of fixture files")
		watch   = flag.Bool("watch", false, "Reload fixtures when they change")
		logPath = flag.String("log", "", "Path of a log file")
		sets    fixture.Overrides
	)
	flag.Var(&sets, "set", "Override a value in every fixture, as path=value (repeatable)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The terminal belongs to the program, so logs only go to a file.
	logger := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	fixtures, err := load(*pattern, sets)
	if err != nil {
		return err
	}
	entries, err := decodeEntries(fixtures, logger)
	if err != nil {
		return err
	}

	p := bt.NewProgram(ctx, bt.New(entries))

	if *watch {
		go func() {
			err := fixture.Watch(ctx, logger, *pattern, func(path string) {
				logger.Info("fixture changed", "path", path)
				p.Send(reload(*pattern, sets, logger))
			})
			if err != nil {
				p.Send(bt.ErrMsg{Err: fmt.Errorf("watch: %w", err)})
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
