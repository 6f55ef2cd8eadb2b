package httpapi

// CORS / origin configuration (opt-in). If no origins are configured, CORS
// middleware is not added and WebSocket upgrades accept any Origin, matching
// a viewer page served from an arbitrary local port.
var (
	corsEnabled        bool
	corsAllowedOrigins []string
)

// SetAllowedOrigins restricts cross-origin requests and WebSocket upgrades
// to the given origins. An empty list allows everything.
func SetAllowedOrigins(origins []string) {
	corsAllowedOrigins = append([]string(nil), origins...)
	corsEnabled = len(corsAllowedOrigins) > 0
}

func originAllowed(origin string) bool {
	if !corsEnabled || origin == "" {
		return true
	}
	for _, o := range corsAllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
