package main

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/infopanel"
	bt "github.com/fwojciec/infopanel/bubbletea"
	"github.com/fwojciec/infopanel/fixture"
	ipjson "github.com/fwojciec/infopanel/json"
	"github.com/fwojciec/infopanel/loopback"
)

// decodeEntries pushes every fixture through a Bridge over a loopback host,
// so the preview sees payloads exactly as the widget would.
func decodeEntries(fixtures []fixture.Fixture, logger *slog.Logger) ([]bt.Entry, error) {
	host := loopback.New(nil)
	bridge := infopanel.NewBridge(host, ipjson.DecodePayload, infopanel.WithLogger(logger))

	var cur bt.Entry
	err := bridge.Subscribe(
		func(p infopanel.Payload) { cur.Payload = p },
		infopanel.WithTransform(infopanel.ObjectTransform),
		infopanel.WithErrorHandler(func(err error) { cur.Err = err }),
	)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	entries := make([]bt.Entry, 0, len(fixtures))
	for _, f := range fixtures {
		cur = bt.Entry{Name: f.Name}
		host.Deliver(f.Envelope())
		entries = append(entries, cur)
	}
	return entries, nil
}

// load reads the fixtures matching pattern and applies the overrides.
func load(pattern string, sets fixture.Overrides) ([]fixture.Fixture, error) {
	fixtures, err := fixture.LoadAll(pattern)
	if err != nil {
		return nil, err
	}
	return sets.ApplyAll(fixtures)
}

// reload loads the fixtures again and returns the message for the program.
func reload(pattern string, sets fixture.Overrides, logger *slog.Logger) tea.Msg {
	fixtures, err := load(pattern, sets)
	if err != nil {
		return bt.ErrMsg{Err: err}
	}
	entries, err := decodeEntries(fixtures, logger)
	if err != nil {
		return bt.ErrMsg{Err: err}
	}
	return bt.EntriesMsg{Entries: entries}
}
