//go:build js && wasm

// Command infopanel is the browser widget. Build it with
//
//	GOOS=js GOARCH=wasm go build -o widget.wasm ./cmd/infopanel
//
// and load it in a page embedded by the dashboard host, together with Go's
// wasm_exec.js.
package main

import (
	"log/slog"

	"github.com/fwojciec/infopanel"
	ipjson "github.com/fwojciec/infopanel/json"
	"github.com/fwojciec/infopanel/wasm"
)

func main() {
	logger := slog.New(wasm.NewConsoleHandler(&slog.HandlerOptions{Level: slog.LevelInfo}))

	host := wasm.NewHost(logger)
	renderer := infopanel.NewRenderer(wasm.NewDocument(), infopanel.WithLogger(logger))
	bridge := infopanel.NewBridge(host, ipjson.DecodePayload, infopanel.WithLogger(logger))

	err := bridge.Subscribe(
		func(p infopanel.Payload) {
			if err := renderer.Render(p); err != nil {
				logger.Error("render failed", "error", err)
			}
		},
		infopanel.WithTransform(infopanel.ObjectTransform),
		infopanel.WithErrorHandler(func(err error) {
			logger.Error("update rejected", "error", err)
		}),
	)
	if err != nil {
		logger.Error("subscribe failed", "error", err)
		return
	}
	logger.Info("widget ready")

	// Callbacks run on the JS event loop; keep the Go runtime alive.
	select {}
}
