package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsMaxAge is how long, in seconds, a browser may cache a preflight answer.
const corsMaxAge = 600

// NewCORSHandler returns a middleware that lets the listed origins call the
// API from a browser or a mobile dev server. Each origin is a full origin
// (scheme + host, no trailing slash); "*" allows any origin.
//
// The request ID and Retry-After headers are exposed so clients can quote
// the former in bug reports and honour the latter after a 429.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "Retry-After"},
		MaxAge:         corsMaxAge,
	})
	return c.Handler
}
