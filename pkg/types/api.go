package types

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: not found
	Error string `json:"error" example:"not found"`
	// HTTP status code.
	// example: 404
	Code int `json:"code" example:"404"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Number of connected subscribers.
	// example: 3
	Clients int `json:"clients" example:"3"`
	// Total key events broadcast since startup.
	// example: 1024
	EventsTotal uint64 `json:"events_total" example:"1024"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Whether the keyboard capture stream is running.
	// example: true
	CaptureRunning bool `json:"capture_running" example:"true"`
}
