// Command infopanel-host serves a local page that embeds the widget and feeds
// it payload fixtures, standing in for the dashboard during development.
//
// Usage:
//
//	GOOS=js GOARCH=wasm go build -o widget.wasm ./cmd/infopanel
//	infopanel-host -wasm widget.wasm -wasm-exec "$(go env GOROOT)/lib/wasm/wasm_exec.js"
//
// Flags:
//
//	-addr string       Listen address (default: localhost:8080)
//	-fixtures string   Glob of fixture files (default: testdata/**/*.{yaml,yml,json})
//	-wasm string       Path of the compiled widget
//	-wasm-exec string  Path of Go's wasm_exec.js
//	-set path=value    Override a value in every fixture (repeatable)
//	-v                 Debug logging
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fwojciec/infopanel/devhost"
	"github.com/fwojciec/infopanel/fixture"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "infopanel-host: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		addr     = flag.String("addr", "localhost:8080", "Listen address")
		pattern  = flag.String("fixtures", "testdata/**/*.{yaml,yml,json}", "Glob of fixture files")
		wasmPath = flag.String("wasm", "", "Path of the compiled widget")
		wasmExec = flag.String("wasm-exec", "", "Path of Go's wasm_exec.js")
		verbose  = flag.Bool("v", false, "Debug logging")
		sets     fixture.Overrides
	)
	flag.Var(&sets, "set", "Override a value in every fixture, as path=value (repeatable)")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := devhost.New(*pattern,
		devhost.WithLogger(logger),
		devhost.WithWASM(*wasmPath),
		devhost.WithWASMExec(*wasmExec),
		devhost.WithOverrides(sets),
	)
	if err != nil {
		return err
	}
	return s.Run(ctx, *addr)
}
