// ABOUTME: HTTP middleware for bearer-token authentication on API endpoints
// ABOUTME: Resolves the token to a user and attaches an Identity to the context

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck/internal/store"
)

// UserResolver looks up an account by id. Satisfied by the store.
type UserResolver interface {
	GetUser(ctx context.Context, id string) (*store.User, error)
}

// extractBearerToken extracts a bearer token from the Authorization header.
// Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Middleware creates an HTTP middleware that verifies bearer tokens,
// resolves the user, and attaches the Identity to the request context.
// Every failure here is an authentication failure: a uniform 401 with no
// detail about whether the target resource exists.
func Middleware(users UserResolver, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				unauthorized(w, errMsg)
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}

			user, err := users.GetUser(r.Context(), userID)
			if err != nil {
				unauthorized(w, "unknown user")
				return
			}

			id := &Identity{
				UserID: user.ID,
				Name:   user.Name,
				Email:  user.Email,
				Image:  user.Image,
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	http.Error(w, `{"error":"`+msg+`"}`, http.StatusUnauthorized)
}
