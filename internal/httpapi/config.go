package httpapi

import (
	"net/http"

	"github.com/go-chi/cors"
)

// DefaultMaxBodyBytes bounds JSON request bodies unless SetMaxBodyBytes
// says otherwise. Chat histories are the largest payloads.
const DefaultMaxBodyBytes int64 = 1 << 20

var maxBodyBytes = DefaultMaxBodyBytes

// SetMaxBodyBytes sets the JSON body limit; n <= 0 restores the default.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		n = DefaultMaxBodyBytes
	}
	maxBodyBytes = n
}

// corsSettings is applied when NewMux builds the router. CORS is opt-in.
type corsSettings struct {
	enabled bool
	origins []string
	methods []string
	headers []string
}

var corsCfg corsSettings

// SetCORSOptions configures CORS for routers built afterwards. Empty lists
// take permissive defaults suited to browser playgrounds.
func SetCORSOptions(enabled bool, origins, methods, headers []string) {
	corsCfg = corsSettings{
		enabled: enabled,
		origins: append([]string(nil), origins...),
		methods: append([]string(nil), methods...),
		headers: append([]string(nil), headers...),
	}
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return def
	}
	return v
}

// corsMiddleware returns nil when CORS is disabled.
func corsMiddleware() func(http.Handler) http.Handler {
	if !corsCfg.enabled {
		return nil
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: orDefault(corsCfg.origins, []string{"*"}),
		AllowedMethods: orDefault(corsCfg.methods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: orDefault(corsCfg.headers, []string{"Content-Type", "Authorization", "X-Request-Id", "X-Log-Level"}),
		// browsers hide non-safelisted response headers unless exposed
		ExposedHeaders: []string{"X-Request-Id", attemptsHeader},
		MaxAge:         300,
	})
}
