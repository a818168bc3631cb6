// ABOUTME: HTTP Basic middleware gating write endpoints behind the shared password
// ABOUTME: The username part of the Basic credentials is ignored; only the password counts

package auth

import (
	"log/slog"
	"net/http"
)

// RequireWritePassword wraps a handler so it only runs when the request
// carries the shared write password as HTTP Basic credentials.
func RequireWritePassword(v *Verifier) func(http.Handler) http.Handler {
	logger := slog.Default().With("component", "auth")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, password, ok := r.BasicAuth()
			if !ok {
				http.Error(w, `{"error":"missing credentials"}`, http.StatusUnauthorized)
				return
			}

			authorized, err := v.Verify(password)
			if err != nil {
				logger.Error("password verification failed", "error", err)
				http.Error(w, `{"error":"verification unavailable"}`, http.StatusInternalServerError)
				return
			}
			if !authorized {
				http.Error(w, `{"error":"invalid credentials"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
