package main

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"keywave/internal/hub"
	"keywave/pkg/types"
)

// service assembles the daemon state exposed over the HTTP API.
type service struct {
	hub       *hub.Hub
	started   time.Time
	captureUp *atomic.Bool
}

func (s *service) Attach(conn *websocket.Conn) {
	s.hub.Attach(conn)
}

func (s *service) Ready() bool {
	return s.captureUp.Load()
}

func (s *service) Status() types.StatusResponse {
	now := time.Now()
	return types.StatusResponse{
		Clients:        s.hub.Clients(),
		EventsTotal:    s.hub.Events(),
		UptimeSeconds:  int64(now.Sub(s.started).Seconds()),
		ServerTimeUnix: now.Unix(),
		CaptureRunning: s.captureUp.Load(),
	}
}
