package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser requests from the listed origins. A "*" entry allows
// any origin; credentials are never allowed, so the wildcard is sent as is.
// Preflight requests are answered with 204 without reaching next.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:       []string{"Content-Type", "Authorization"},
		ExposedHeaders:       []string{TraceHeader, "Retry-After"},
		AllowCredentials:     false,
		MaxAge:               300,
		OptionsSuccessStatus: http.StatusNoContent,
	})
}
