package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/homefix-api/internal/domain"
	jwtinfra "github.com/homefix-api/internal/infrastructure/jwt"
	"go.uber.org/zap"
)

type contextKey string

const (
	ClaimsKey contextKey = "claims"
	TokenKey  contextKey = "token"
)

// Client-facing authentication messages.
const (
	MsgHeaderMissing = "Authorization header missing"
	MsgNoToken       = "Token not provided"
	MsgRevoked       = "Token is no longer valid"
	MsgExpired       = "Token expired"
	MsgInvalid       = "Invalid token"
)

// TokenVerifier checks bearer tokens against the signing key and the revocation set.
type TokenVerifier interface {
	Verify(token string) (*jwtinfra.Claims, error)
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Auth returns middleware that validates the Bearer JWT and injects the claims
// and the raw token into context. Handlers never verify the token again.
func Auth(tokens TokenVerifier, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, http.StatusUnauthorized, MsgHeaderMissing)
				return
			}
			tokenStr, ok := bearerToken(authHeader)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, MsgNoToken)
				return
			}

			revoked, err := tokens.IsRevoked(r.Context(), tokenStr)
			if err != nil {
				log.Error("revocation lookup failed", zap.Error(err))
				writeInternalError(w, err)
				return
			}
			if revoked {
				writeJSONError(w, http.StatusUnauthorized, MsgRevoked)
				return
			}

			claims, err := tokens.Verify(tokenStr)
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					writeJSONError(w, http.StatusUnauthorized, MsgExpired)
					return
				}
				writeJSONError(w, http.StatusUnauthorized, MsgInvalid)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			ctx = context.WithValue(ctx, TokenKey, tokenStr)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credential from "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(ClaimsKey).(*jwtinfra.Claims)
	return c, ok
}

// TokenFromContext returns the verified raw bearer token.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(TokenKey).(string)
	return t, ok
}
