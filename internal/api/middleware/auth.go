// Package middleware holds the HTTP middleware shared by API routes.
package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/quantive/confluence/internal/api/response"
	"github.com/quantive/confluence/internal/core"
)

var (
	errMissingKey = core.NewError("AUTH_MISSING", "X-API-Key header required")
	errInvalidKey = core.NewError("AUTH_INVALID", "invalid API key")
)

// APIKeyAuth returns middleware that validates the X-API-Key header.
// An empty configured key disables authentication.
func APIKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get("X-API-Key")
			if provided == "" {
				response.Error(w, http.StatusUnauthorized, errMissingKey)
				return
			}

			// Constant-time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				response.Error(w, http.StatusUnauthorized, errInvalidKey)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
