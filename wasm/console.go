// Package wasm binds the info panel to the browser through syscall/js: a Host
// over window messaging, a Document over the live DOM, and a slog handler
// writing to the browser console. Only the console formatting builds outside
// js/wasm.
package wasm

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
)

var _ slog.Handler = (*ConsoleHandler)(nil)

// ConsoleHandler formats records as text lines and hands each line to a
// sink together with the console method matching the record level.
type ConsoleHandler struct {
	text slog.Handler
	sink func(method, line string)

	mu  *sync.Mutex
	buf *bytes.Buffer
}

// NewHandler creates a ConsoleHandler writing to sink.
func NewHandler(sink func(method, line string), opts *slog.HandlerOptions) *ConsoleHandler {
	buf := new(bytes.Buffer)
	return &ConsoleHandler{
		text: slog.NewTextHandler(buf, opts),
		sink: sink,
		mu:   new(sync.Mutex),
		buf:  buf,
	}
}

func (h *ConsoleHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.text.Enabled(ctx, level)
}

func (h *ConsoleHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	h.buf.Reset()
	err := h.text.Handle(ctx, r)
	line := strings.TrimSuffix(h.buf.String(), "\n")
	h.mu.Unlock()
	if err != nil {
		return err
	}
	h.sink(ConsoleMethod(r.Level), line)
	return nil
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.text = h.text.WithAttrs(attrs)
	return &c
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.text = h.text.WithGroup(name)
	return &c
}

// ConsoleMethod returns the console method for level.
func ConsoleMethod(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	case level >= slog.LevelInfo:
		return "info"
	default:
		return "debug"
	}
}
