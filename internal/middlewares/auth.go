package middlewares

import (
	"context"
	"net/http"

	"spiralscreen/internal/jwt"
	"spiralscreen/internal/logger"
)

// Tokener defines the minimal interface needed by the auth middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Parse(ctx context.Context, tokenString string) (jwt.Identity, error)
}

// AuthMiddleware validates the bearer token and stores the verified identity
// in the request context for downstream handlers.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			identity, err := tokener.Parse(ctx, tokenString)
			if err != nil {
				logger.Log.Errorw("authorization failed", "err", err)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(SetIdentityToContext(ctx, identity)))
		})
	}
}

// contextKey is an unexported type for keys in context
type contextKey struct{}

var identityKey = contextKey{}

// SetIdentityToContext stores a verified identity in the context
func SetIdentityToContext(ctx context.Context, identity jwt.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the verified identity from the context.
// The second return value is false if no identity is present.
func GetIdentityFromContext(ctx context.Context) (jwt.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(jwt.Identity)
	return identity, ok
}
