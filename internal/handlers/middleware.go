package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/identity-hub/apiserver/internal/auth"
)

const (
	healthPath     = "/health"
	authPathPrefix = "/api/auth/"
	bearerPrefix   = "Bearer "
)

type contextKey string

const contextClaimsKey contextKey = "claims"

// AuthGate classifies every request as public or protected. The health
// check and the auth flows pass through; everything else must present a
// verifiable bearer token. All failures look identical to the caller.
func AuthGate(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == healthPath || strings.HasPrefix(path, authPathPrefix) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
				return
			}

			claims, err := tokens.Verify(tokenString)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims the auth gate attached
// to the request.
func ClaimsFromContext(ctx context.Context) (jwt.RegisteredClaims, bool) {
	claims, ok := ctx.Value(contextClaimsKey).(jwt.RegisteredClaims)
	return claims, ok
}
