package infopanel

import (
	"fmt"
	"log/slog"
)

// Host is the cross-context channel to the embedding dashboard.
type Host interface {
	// PostMessage sends an envelope to the parent context.
	PostMessage(env Envelope) error
	// AddListener registers fn to run for every inbound envelope, in
	// delivery order.
	AddListener(fn func(Envelope))
}

// PayloadDecoder turns a transformed message body into a typed Payload.
type PayloadDecoder func(Body) (Payload, error)

// Bridge connects a Host to a payload callback. It signals readiness on
// subscribe and forwards every accepted data update.
type Bridge struct {
	host   Host
	decode PayloadDecoder
	logger *slog.Logger
}

// NewBridge creates a Bridge over host, decoding bodies with decode.
func NewBridge(host Host, decode PayloadDecoder, opts ...Option) *Bridge {
	o := newOptions(opts)
	return &Bridge{host: host, decode: decode, logger: o.logger}
}

// SubscribeOption configures a single Subscribe call.
type SubscribeOption func(*subscribeConfig)

type subscribeConfig struct {
	transform func(Body) Body
	onError   func(error)
}

// WithTransform sets the function applied to every accepted message body
// before decoding. If nil or not set, the body is used unchanged.
func WithTransform(fn func(Body) Body) SubscribeOption {
	return func(c *subscribeConfig) {
		c.transform = fn
	}
}

// WithErrorHandler sets a callback that receives decoding failures. The
// payload callback is not invoked for an update that fails to decode.
func WithErrorHandler(fn func(error)) SubscribeOption {
	return func(c *subscribeConfig) {
		c.onError = fn
	}
}

// Subscribe registers callback for every data update delivered by the host
// and then posts the ready signal to the parent context.
//
// Every call attaches a new listener and posts a new ready signal. Callers
// should subscribe at most once.
func (b *Bridge) Subscribe(callback func(Payload), opts ...SubscribeOption) error {
	var cfg subscribeConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.transform == nil {
		cfg.transform = Identity
	}

	b.host.AddListener(func(env Envelope) {
		msg, err := ParseEnvelope(env)
		if err != nil {
			return
		}
		update, ok := msg.(DataUpdate)
		if !ok {
			return
		}
		p, err := b.decode(cfg.transform(update.Body))
		if err != nil {
			b.logger.Warn("decode payload", "error", err)
			if cfg.onError != nil {
				cfg.onError(fmt.Errorf("decode payload: %w", err))
			}
			return
		}
		callback(p)
	})

	if err := b.host.PostMessage(NewEnvelope(ReadySignal{})); err != nil {
		return fmt.Errorf("post ready signal: %w", err)
	}
	b.logger.Debug("ready signal posted")
	return nil
}
