package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/homefix-api/internal/config"
	jwtinfra "github.com/homefix-api/internal/infrastructure/jwt"
	"github.com/homefix-api/internal/transport/http/middleware"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testVerifier pairs a real HS256 provider with an in-memory revocation set.
type testVerifier struct {
	*jwtinfra.Provider
	revoked map[string]bool
}

func (v *testVerifier) IsRevoked(_ context.Context, token string) (bool, error) {
	return v.revoked[token], nil
}

func newTestVerifier(t *testing.T) *testVerifier {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{JWTSecret: "handler-test-secret", JWTExpiry: time.Hour})
	require.NoError(t, err)
	return &testVerifier{Provider: p, revoked: map[string]bool{}}
}

// bearerReq builds a request with a signed Bearer token for userID.
func bearerReq(t *testing.T, v *testVerifier, method, target, userID string, body []byte) *http.Request {
	t.Helper()
	token, err := v.Sign(userID, userID+"@example.com")
	require.NoError(t, err)
	var r *http.Request
	if body != nil {
		r = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

// withChiID injects a chi URL param "id" into the request context.
func withChiID(r *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// serveAuthed wraps the handler with middleware.Auth before serving.
func serveAuthed(v *testVerifier, h http.Handler, w http.ResponseWriter, r *http.Request) {
	middleware.Auth(v, zap.NewNop())(h).ServeHTTP(w, r)
}
