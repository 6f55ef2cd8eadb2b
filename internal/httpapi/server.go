// Package httpapi exposes the subscriber WebSocket endpoint, the status and
// health API, and the static asset server.
package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"keywave/pkg/types"
)

// Service defines what the HTTP layer needs from the broadcast core.
type Service interface {
	// Attach hands an upgraded connection to the hub, which owns it from
	// then on.
	Attach(conn *websocket.Conn)
	Status() types.StatusResponse
	Ready() bool
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return originAllowed(r.Header.Get("Origin"))
	},
}

// NewMux builds the event/API router: /ws, /status, /healthz, /readyz,
// /metrics.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		}))
	}

	// Subscribe godoc
	// @Summary      Subscribe to the key event stream
	// @Description  Upgrades to a WebSocket pushing one JSON WireMessage per message. Inbound messages are ignored.
	// @Produce      json
	// @Success      101
	// @Router       /ws [get]
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade already replied to the client.
			logError(err, "websocket upgrade failed")
			return
		}
		svc.Attach(conn)
	})

	// Status godoc
	// @Summary      Server status
	// @Success      200 {object} types.StatusResponse
	// @Router       /status [get]
	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(svc.Status()); err != nil {
			writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("capture not running"))
	})

	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// NewStaticMux serves the presentation assets from dir. Conventional
// directory responder, no custom logic; runs on its own port.
func NewStaticMux(dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		}))
	}
	r.Handle("/*", http.FileServer(http.Dir(dir)))
	return r
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
