package httpapi

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"keywave/internal/hub"
	"keywave/pkg/types"
)

type hubService struct {
	h *hub.Hub
}

func (s *hubService) Attach(conn *websocket.Conn) { s.h.Attach(conn) }
func (s *hubService) Ready() bool                 { return true }
func (s *hubService) Status() types.StatusResponse {
	return types.StatusResponse{Clients: s.h.Clients()}
}

func newEventServer(t *testing.T) (*hub.Hub, *httptest.Server) {
	t.Helper()
	h := hub.New(zerolog.Nop(), 8)
	ts := httptest.NewServer(NewMux(&hubService{h: h}))
	t.Cleanup(ts.Close)
	t.Cleanup(h.Close)
	return h, ts
}

func dialViewer(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", u, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitClients(t *testing.T, h *hub.Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for h.Clients() != want {
		if time.Now().After(deadline) {
			t.Fatalf("clients = %d, want %d", h.Clients(), want)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) types.WireMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg types.WireMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		t.Fatalf("unmarshal %q: %v", payload, err)
	}
	return msg
}

func keydown(key string) types.WireMessage {
	return types.WireMessage{
		Type:      types.MessageKeyDown,
		Key:       key,
		Modifiers: &types.ModifierState{Shift: true},
		Timestamp: time.Now().UnixMilli(),
	}
}

func TestViewerReceivesBroadcast(t *testing.T) {
	h, ts := newEventServer(t)
	conn := dialViewer(t, ts)
	waitClients(t, h, 1)

	// Inbound messages are accepted but ignored.
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"hello":"server"}`)); err != nil {
		t.Fatalf("write: %v", err)
	}

	h.Broadcast(keydown("a"))

	msg := readMessage(t, conn)
	if msg.Type != types.MessageKeyDown || msg.Key != "a" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Modifiers == nil || !msg.Modifiers.Shift {
		t.Fatalf("missing modifier snapshot: %+v", msg.Modifiers)
	}
}

func TestFanOutToAllViewers(t *testing.T) {
	h, ts := newEventServer(t)
	conns := []*websocket.Conn{dialViewer(t, ts), dialViewer(t, ts), dialViewer(t, ts)}
	waitClients(t, h, 3)

	h.Broadcast(keydown("q"))

	for i, conn := range conns {
		if msg := readMessage(t, conn); msg.Key != "q" {
			t.Fatalf("viewer %d got %+v", i, msg)
		}
	}
}

func TestClosedViewerIsPruned(t *testing.T) {
	h, ts := newEventServer(t)
	stay := dialViewer(t, ts)
	leave := dialViewer(t, ts)
	waitClients(t, h, 2)

	_ = leave.Close()
	waitClients(t, h, 1)

	h.Broadcast(keydown("z"))
	if msg := readMessage(t, stay); msg.Key != "z" {
		t.Fatalf("remaining viewer got %+v", msg)
	}
}

func TestViewerReceivesMessagesInOrder(t *testing.T) {
	h, ts := newEventServer(t)
	conn := dialViewer(t, ts)
	waitClients(t, h, 1)

	for _, key := range []string{"1", "2", "3"} {
		h.Broadcast(keydown(key))
	}
	for _, want := range []string{"1", "2", "3"} {
		if msg := readMessage(t, conn); msg.Key != want {
			t.Fatalf("got %q, want %q", msg.Key, want)
		}
	}
}
