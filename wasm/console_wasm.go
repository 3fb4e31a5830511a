//go:build js && wasm

package wasm

import (
	"log/slog"
	"syscall/js"
)

// NewConsoleHandler creates a ConsoleHandler writing to the browser console.
func NewConsoleHandler(opts *slog.HandlerOptions) *ConsoleHandler {
	return NewHandler(func(method, line string) {
		console := js.Global().Get("console")
		if isNil(console) {
			return
		}
		console.Call(method, line)
	}, opts)
}

func isNil(v js.Value) bool {
	return v.Type() == js.TypeNull || v.Type() == js.TypeUndefined
}
