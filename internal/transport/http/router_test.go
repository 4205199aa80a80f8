package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/homefix-api/internal/application/media"
	"github.com/homefix-api/internal/config"
	"github.com/homefix-api/internal/domain"
	jwtinfra "github.com/homefix-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubVerifier struct{ *jwtinfra.Provider }

func (stubVerifier) IsRevoked(context.Context, string) (bool, error) { return false, nil }

type stubMedia struct {
	media.Service
	variant media.Variant
	mine    []*domain.Media
}

func (s *stubMedia) Variant() media.Variant { return s.variant }

func (s *stubMedia) ListMine(context.Context, string) ([]*domain.Media, error) { return s.mine, nil }

func newTestRouter(t *testing.T) (http.Handler, *jwtinfra.Provider) {
	t.Helper()
	cfg := &config.Config{JWTSecret: "router-test", JWTExpiry: time.Hour, AllowedOrigins: []string{"*"}}
	p, err := jwtinfra.NewProvider(cfg)
	require.NoError(t, err)
	deps := &Deps{
		Media:             &stubMedia{variant: media.MediaVariant(1 << 20), mine: []*domain.Media{{MediaID: "m1"}}},
		Images:            &stubMedia{variant: media.ImageVariant(1 << 20)},
		Tokens:            stubVerifier{p},
		Logger:            zap.NewNop(),
		StorageConfigured: true,
	}
	return NewRouter(cfg, deps), p
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_ProtectedRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)
	for _, path := range []string{"/profile", "/media/feed", "/media/my-media", "/images/feed", "/images/my-images"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, path)
	}
}

func TestRouter_MyMediaWithToken(t *testing.T) {
	router, p := newTestRouter(t)
	tok, err := p.Sign("u1", "a@b.co")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/media/my-media", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"count":1`)
}
