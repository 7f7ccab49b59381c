package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// TokenVerifier issues and checks bearer tokens; satisfied by *auth.TokenService.
type TokenVerifier interface {
	Issue(claims map[string]interface{}) (string, error)
	Verify(token string) (jwt.MapClaims, error)
}

// RequireToken rejects requests without a valid bearer token and stores the
// decoded claims in the request context.
func RequireToken(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondError(w, http.StatusUnauthorized, "Unauthorized Access")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, http.StatusUnauthorized, "Unauthorized Access")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				respondError(w, http.StatusUnauthorized, "Unauthorized Access")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFromContext(ctx context.Context) jwt.MapClaims {
	if claims, ok := ctx.Value(claimsKey).(jwt.MapClaims); ok {
		return claims
	}
	return nil
}

// claimedEmail returns the email claim of the verified token, or "" when the
// request carried no token.
func claimedEmail(ctx context.Context) string {
	email, _ := claimsFromContext(ctx)["email"].(string)
	return email
}
