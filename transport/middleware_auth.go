package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/asetku/marketplace/application/auth"
	"github.com/asetku/marketplace/constant"
	"github.com/asetku/marketplace/utils/errors"
	"github.com/gorilla/mux"
)

// AuthMiddleware returns a middleware that validates JWT sessions using AuthApp.
// Public endpoints (catalog, login, webhook, swagger) pass through without a token;
// internal endpoints carry their own API-key middleware.
func AuthMiddleware(authApp auth.AuthApp) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Public paths
			path := r.URL.Path
			if isPublicPath(path) {
				next.ServeHTTP(w, r)
				return
			}

			// Check Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			// Validate token via AuthApp
			userID, err := authApp.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
				return
			}

			// Embed userID into context
			ctx := context.WithValue(r.Context(), constant.UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// isPublicPath defines which endpoints are public (no auth required)
func isPublicPath(path string) bool {
	if strings.HasPrefix(path, "/swagger/") || strings.HasPrefix(path, "/internal/") {
		return true
	}
	if strings.HasPrefix(path, "/api/v1/models") {
		return true
	}
	if path == "/login" || path == "/api/v1/payment/notification" {
		return true
	}

	return false
}
