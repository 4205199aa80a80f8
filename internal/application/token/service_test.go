package token

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/homefix-api/internal/domain"
	jwtinfra "github.com/homefix-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockSigner struct{ mock.Mock }

func (m *mockSigner) Sign(userID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}
func (m *mockSigner) Verify(token string) (*jwtinfra.Claims, error) {
	args := m.Called(token)
	if c, _ := args.Get(0).(*jwtinfra.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockSigner) Decode(token string) (*jwtinfra.Claims, error) {
	args := m.Called(token)
	if c, _ := args.Get(0).(*jwtinfra.Claims); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRevocations struct{ mock.Mock }

func (m *mockRevocations) Revoke(ctx context.Context, token, userID string, expiresAt time.Time) error {
	return m.Called(ctx, token, userID, expiresAt).Error(0)
}
func (m *mockRevocations) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}

func newTestService(s *mockSigner, r *mockRevocations) *service {
	return NewService(ServiceDeps{Signer: s, Revocations: r, Expiry: time.Hour}).(*service)
}

// --- tests ---

func TestIssue(t *testing.T) {
	signer := new(mockSigner)
	signer.On("Sign", "u1", "a@b.co").Return("tok", nil)

	tok, err := newTestService(signer, new(mockRevocations)).Issue("u1", "a@b.co")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok)
}

func TestVerify_PassesThroughKinds(t *testing.T) {
	signer := new(mockSigner)
	signer.On("Verify", "old").Return(nil, domain.ErrTokenExpired)

	_, err := newTestService(signer, new(mockRevocations)).Verify("old")
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestRevoke_CopiesExpiryFromClaims(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	signer := new(mockSigner)
	signer.On("Decode", "tok").Return(&jwtinfra.Claims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}, nil)
	revs := new(mockRevocations)
	revs.On("Revoke", mock.Anything, "tok", "u1", exp).Return(nil)

	require.NoError(t, newTestService(signer, revs).Revoke(context.Background(), "tok", "u1"))
	revs.AssertExpectations(t)
}

func TestRevoke_UndecodableTokenUsesDefaultExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	signer := new(mockSigner)
	signer.On("Decode", "junk").Return(nil, domain.ErrTokenInvalid)
	revs := new(mockRevocations)
	revs.On("Revoke", mock.Anything, "junk", "u1", now.Add(time.Hour)).Return(nil)

	svc := newTestService(signer, revs)
	svc.now = func() time.Time { return now }
	require.NoError(t, svc.Revoke(context.Background(), "junk", "u1"))
	revs.AssertExpectations(t)
}

func TestRevoke_StoreError(t *testing.T) {
	signer := new(mockSigner)
	signer.On("Decode", "tok").Return(&jwtinfra.Claims{}, nil)
	revs := new(mockRevocations)
	revs.On("Revoke", mock.Anything, "tok", "u1", mock.Anything).Return(errors.New("boom"))

	err := newTestService(signer, revs).Revoke(context.Background(), "tok", "u1")
	assert.Error(t, err)
}

func TestIsRevoked(t *testing.T) {
	revs := new(mockRevocations)
	revs.On("IsRevoked", mock.Anything, "tok").Return(true, nil)
	revs.On("IsRevoked", mock.Anything, "other").Return(false, nil)
	svc := newTestService(new(mockSigner), revs)

	revoked, err := svc.IsRevoked(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = svc.IsRevoked(context.Background(), "other")
	require.NoError(t, err)
	assert.False(t, revoked)
}
