// Package hub fans out encoded key events to connected WebSocket
// subscribers, best effort, pruning dead or stalled connections.
package hub

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"keywave/pkg/types"
)

// Hub maintains the registry of connected subscribers. Registry membership
// is the only shared state; add/remove are short critical sections and no
// lock is held across connection I/O.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	buffer int
	events atomic.Uint64
	log    zerolog.Logger
}

// New creates a hub. buffer bounds each subscriber's send queue; a
// subscriber whose queue overflows is dropped rather than allowed to stall
// the broadcast path. buffer <= 0 selects the default.
func New(log zerolog.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = defaultSendBuffer
	}
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		buffer: buffer,
		log:    log,
	}
}

// Attach wraps an upgraded connection in a subscriber, registers it, and
// starts its pumps. The hub owns the connection from here on.
func (h *Hub) Attach(conn *websocket.Conn) *Subscriber {
	s := newSubscriber(conn, h.buffer)
	h.Register(s)
	go s.writePump(h)
	go s.readPump(h)
	return s
}

// Register adds s to the registry; it receives all subsequent broadcasts.
// No replay of past messages.
func (h *Hub) Register(s *Subscriber) {
	h.mu.Lock()
	h.subs[s] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()

	subscribersGauge.Set(float64(n))
	h.log.Info().Str("subscriber", s.ID).Int("clients", n).Msg("client connected")
}

// Unregister removes s from the registry and closes it. Idempotent; safe to
// call concurrently with Broadcast and with itself.
func (h *Hub) Unregister(s *Subscriber) {
	h.mu.Lock()
	_, present := h.subs[s]
	if present {
		delete(h.subs, s)
	}
	n := len(h.subs)
	h.mu.Unlock()

	s.close()
	if !present {
		return
	}
	subscribersGauge.Set(float64(n))
	h.log.Info().Str("subscriber", s.ID).Int("clients", n).Msg("client disconnected")
}

// Broadcast delivers msg to every currently registered subscriber. Delivery
// is fire-and-forget: a subscriber whose send queue is full is dropped, and
// one subscriber's failure never affects the others or the caller. An empty
// registry is a no-op.
func (h *Hub) Broadcast(msg types.WireMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		h.log.Error().Err(err).Msg("encode broadcast")
		return
	}
	h.events.Add(1)
	broadcastsTotal.Inc()

	var stalled []*Subscriber
	h.mu.RLock()
	for s := range h.subs {
		select {
		case s.send <- payload:
			messagesSentTotal.Inc()
		default:
			stalled = append(stalled, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range stalled {
		subscriberDropsTotal.Inc()
		h.log.Warn().Str("subscriber", s.ID).Msg("dropping stalled subscriber")
		h.Unregister(s)
	}
}

// Clients returns the number of registered subscribers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Events returns the number of messages broadcast since startup.
func (h *Hub) Events() uint64 {
	return h.events.Load()
}

// Close disconnects every subscriber. Used at shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	subs := make([]*Subscriber, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	h.subs = make(map[*Subscriber]struct{})
	h.mu.Unlock()

	for _, s := range subs {
		s.close()
	}
	subscribersGauge.Set(0)
}
