package middleware

import (
	"context"
	"net/http"
	"strings"

	"stockgyan-backend/internal/auth"
	"stockgyan-backend/internal/models"
)

type contextKey string

const UserIDKey contextKey = "user_id"
const MobileKey contextKey = "mobile"
const UserKey contextKey = "user"

// SessionResolver checks a session token against server-side session state.
// A token whose session row was revoked fails here even if the JWT itself is
// still within its expiry.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.User, *auth.Claims, error)
}

type AuthMiddleware struct {
	resolver SessionResolver
}

func NewAuthMiddleware(resolver SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// TokenFromRequest extracts the session token from "Authorization: Bearer".
// Websocket clients cannot set headers from the browser API, so a "token"
// query parameter is accepted as a fallback.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// Authenticate validates the session token and loads the user into the
// request context
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			http.Error(w, "Authorization required", http.StatusUnauthorized)
			return
		}

		user, claims, err := m.resolver.ResolveSession(r.Context(), token)
		if err != nil {
			http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
		ctx = context.WithValue(ctx, MobileKey, claims.Mobile)
		ctx = context.WithValue(ctx, UserKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the authenticated user ID from the context
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

// GetUserFromContext extracts the authenticated user from the context
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserKey).(*models.User)
	return user, ok
}
