package middlewares

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"cutmevents/internal/utils"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the verified token claims, if any.
func ClaimsFromContext(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*utils.Claims)
	return claims, ok && claims != nil
}

func withClaims(r *http.Request, claims *utils.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
}

// RequireRole rejects requests without a valid bearer token carrying role.
func RequireRole(secret, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.SendJSONError(w, "Missing token", http.StatusUnauthorized)
				return
			}

			tokenString, err := utils.BearerToken(header)
			if err != nil {
				utils.SendJSONError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ParseJWT(secret, tokenString)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("Rejected bearer token")
				utils.SendJSONError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			if claims.Role != role {
				hlog.FromRequest(r).Warn().Str("role", claims.Role).Str("required", role).Msg("Role mismatch")
				utils.SendJSONError(w, "Forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, withClaims(r, claims))
		})
	}
}

// OptionalAuth attaches claims when a valid bearer token is present and
// otherwise lets the request through untouched.
func OptionalAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := utils.BearerToken(r.Header.Get("Authorization"))
			if err == nil {
				if claims, err := utils.ParseJWT(secret, tokenString); err == nil {
					r = withClaims(r, claims)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
