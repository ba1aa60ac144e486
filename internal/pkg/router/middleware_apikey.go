package router

import (
	"context"
	"net/http"
)

// HeaderAPIKey carries the "publicKey:secret" credential on programmatic calls.
const HeaderAPIKey = "X-API-Key"

// NewAPIKeyMiddleware authenticates requests through the given check. The
// check receives the raw header value and returns nil when the key is valid.
func NewAPIKeyMiddleware(check func(ctx context.Context, raw string) error) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderAPIKey)
			if raw == "" {
				writeJSON(w, map[string]string{"message": "API key required"}, http.StatusUnauthorized)
				return
			}

			if err := check(r.Context(), raw); err != nil {
				writeJSON(w, map[string]string{"message": "Invalid API key"}, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
