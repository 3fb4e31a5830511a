package devhost

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/fwojciec/infopanel"
	ipjson "github.com/fwojciec/infopanel/json"
)

const (
	pingInterval = 20 * time.Second
	pingTimeout  = 5 * time.Second
	writeTimeout = 15 * time.Second
)

// hub fans envelopes out to connected host pages, dropping slow consumers.
type hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	logger  *slog.Logger
}

func newHub(logger *slog.Logger) *hub {
	return &hub{clients: make(map[*client]struct{}), logger: logger}
}

// broadcast sends data to every client and returns how many accepted it.
func (h *hub) broadcast(data []byte) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	sent := 0
	for c := range h.clients {
		if !c.enqueue(data) {
			h.logger.Warn("dropping slow host page")
			go h.remove(c)
			continue
		}
		sent++
	}
	return sent
}

// sendTo sends data to c if it is still registered and reports whether c
// accepted it.
func (h *hub) sendTo(c *client, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.clients[c]; !ok {
		return false
	}
	if !c.enqueue(data) {
		h.logger.Warn("dropping slow host page")
		go h.remove(c)
		return false
	}
	return true
}

func (h *hub) register(conn *websocket.Conn) *client {
	c := &client{conn: conn, send: make(chan []byte, 16)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	return c
}

func (h *hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *hub) len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

func (c *client) enqueue(data []byte) bool {
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) writeLoop(ctx context.Context) error {
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return nil
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// readLoop reads envelopes relayed from the widget until the connection
// fails. onReady runs for every ready signal.
func (c *client) readLoop(ctx context.Context, logger *slog.Logger, onReady func()) error {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return err
		}
		env, err := ipjson.UnmarshalEnvelope(data)
		if err != nil {
			logger.Debug("ignoring relay message", "error", err)
			continue
		}
		msg, err := infopanel.ParseEnvelope(env)
		if err != nil {
			logger.Debug("ignoring relay message", "error", err)
			continue
		}
		if _, ok := msg.(infopanel.ReadySignal); ok {
			onReady()
		}
	}
}

func (c *client) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
			_ = c.conn.Ping(pingCtx)
			cancel()
		}
	}
}
