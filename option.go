package infopanel

import "log/slog"

// Option configures a Bridge or a Renderer.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the structured logger. If nil or not set, logs are discarded.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}
