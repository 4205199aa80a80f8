package jwtinfra

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/homefix-api/internal/config"
	"github.com/homefix-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, secret string, expiry time.Duration) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{JWTSecret: secret, JWTExpiry: expiry})
	require.NoError(t, err)
	return p
}

func TestNewProvider_RejectsEmptySecret(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTExpiry: time.Hour})
	assert.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t, "secret", time.Hour)
	tok, err := p.Sign("u1", "a@b.com")
	require.NoError(t, err)

	claims, err := p.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestVerify_ExpiredAfterLifetime(t *testing.T) {
	p := newTestProvider(t, "secret", time.Minute)
	tok, err := p.Sign("u1", "a@b.com")
	require.NoError(t, err)

	p.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = p.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	signer := newTestProvider(t, "secret-a", time.Hour)
	verifier := newTestProvider(t, "secret-b", time.Hour)
	tok, err := signer.Sign("u1", "a@b.com")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	p := newTestProvider(t, "secret", time.Hour)
	_, err := p.Verify("not-a-real-token")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	p := newTestProvider(t, "secret", time.Hour)
	claims := Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = p.Verify(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestDecode_IgnoresSignatureAndExpiry(t *testing.T) {
	signer := newTestProvider(t, "secret-a", time.Minute)
	tok, err := signer.Sign("u1", "a@b.com")
	require.NoError(t, err)

	other := newTestProvider(t, "secret-b", time.Minute)
	other.now = func() time.Time { return time.Now().Add(time.Hour) }
	claims, err := other.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestDecode_Garbage(t *testing.T) {
	p := newTestProvider(t, "secret", time.Hour)
	_, err := p.Decode("garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
