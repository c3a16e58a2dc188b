package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vaughan-dsouza/medvault/internal/models"
	"github.com/vaughan-dsouza/medvault/internal/utils"
)

var ErrMissingBearer = errors.New("missing or malformed bearer token")

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func BearerToken(r *http.Request) (string, error) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", ErrMissingBearer
	}

	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrMissingBearer
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrMissingBearer
	}
	return token, nil
}

// Validator resolves a bearer token to its user.
type Validator interface {
	Validate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the authenticated user in the request context.
func AuthMiddleware(v Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := BearerToken(r)
			if err != nil {
				utils.Text(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			user, err := v.Validate(r.Context(), token)
			if err != nil {
				utils.Text(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			// push user into context
			ctx := context.WithValue(r.Context(), utils.CtxUserKey, user)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user stored by AuthMiddleware, or nil.
func UserFromContext(ctx context.Context) *models.User {
	u, _ := ctx.Value(utils.CtxUserKey).(*models.User)
	return u
}
