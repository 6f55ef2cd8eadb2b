package hub

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxInboundBytes   = 512
	defaultSendBuffer = 64
)

// Subscriber is one live outbound connection. Messages queue on send in
// broadcast order and a single write pump drains them, so each subscriber
// observes broadcasts in the order they were produced.
type Subscriber struct {
	ID   string
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newSubscriber(conn *websocket.Conn, buffer int) *Subscriber {
	return &Subscriber{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// close tears the connection down. Safe to invoke from multiple code paths
// concurrently; only the first call acts.
func (s *Subscriber) close() {
	s.once.Do(func() {
		close(s.done)
		if s.conn == nil {
			return
		}
		_ = s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		_ = s.conn.Close()
	})
}

// writePump drains the send queue to the connection and keeps it alive with
// pings. A failed write means the peer is gone: unregister and stop.
func (s *Subscriber) writePump(h *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case payload := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				h.Unregister(s)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Unregister(s)
				return
			}
		case <-s.done:
			return
		}
	}
}

// readPump discards inbound messages; the connection is outbound-only. Its
// job is to notice the peer closing and to refresh the pong deadline.
func (s *Subscriber) readPump(h *Hub) {
	s.conn.SetReadLimit(maxInboundBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			h.Unregister(s)
			return
		}
	}
}
