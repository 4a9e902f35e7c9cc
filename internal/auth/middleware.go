package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/markitup/markitup-api/internal/httputil"
	"github.com/markitup/markitup-api/internal/user"
)

// ContextKey is a type for context keys to avoid collisions
type ContextKey string

const UserIDContextKey ContextKey = "user_id"

// Middleware handles authentication for protected routes
type Middleware struct {
	tokenService TokenService
}

func NewMiddleware(tokenService TokenService) *Middleware {
	return &Middleware{tokenService: tokenService}
}

var (
	errMissingAuthHeader = errors.New("Missing authorization header")
	errInvalidAuthHeader = errors.New("Invalid authorization header format")
)

// BearerToken extracts the token from the Authorization header. Token
// transport is the header only, standard bearer-token convention.
func BearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingAuthHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errInvalidAuthHeader
	}

	return parts[1], nil
}

// RequireAuth validates the bearer token and injects the caller's identity
// into the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := BearerToken(r)
		if err != nil {
			code := httputil.CodeInvalidAuthHeader
			if errors.Is(err, errMissingAuthHeader) {
				code = httputil.CodeMissingAuth
			}
			httputil.RespondErrorWithCode(w, err.Error(), code, http.StatusUnauthorized)
			return
		}

		userID, err := m.tokenService.Verify(token)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.RespondErrorWithCode(w, "Token has expired", httputil.CodeTokenExpired, http.StatusUnauthorized)
				return
			}
			httputil.RespondErrorWithCode(w, "Invalid token", httputil.CodeInvalidToken, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (user.ID, bool) {
	userID, ok := ctx.Value(UserIDContextKey).(user.ID)
	return userID, ok
}
