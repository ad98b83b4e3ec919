package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pulsefit/core/internal/auth"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type contextKey string

const userIDContextKey contextKey = "user-id"

// UserIDFromRequest returns the authenticated user placed in the request
// context by the auth middleware.
func UserIDFromRequest(r *http.Request) (uuid.UUID, bool) {
	userID, ok := r.Context().Value(userIDContextKey).(uuid.UUID)
	return userID, ok
}

type AuthMiddlewareHandler struct {
	tokenStore           auth.TokenStore
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(tokenStore auth.TokenStore) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		tokenStore: tokenStore,
		allowedPathsPrefixes: []string{
			// issuing and refreshing tokens is open by definition
			"/auth/v1/",
			"/health",
			"/metrics",
		},
	}
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || h.pathIsAlwaysAllowed(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if token == "" {
				http.Error(w, "no auth token", http.StatusUnauthorized)
				return
			}

			userID, err := h.tokenStore.UserFor(r.Context(), token)
			if err != nil {
				if !errors.Is(err, auth.ErrTokenNotFound) {
					log.Errorf("auth middleware, check token: %s", err)
				}
				http.Error(w, "invalid auth token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
