package token

import (
	"context"
	"fmt"
	"time"

	jwtinfra "github.com/homefix-api/internal/infrastructure/jwt"
)

// Service issues, verifies and revokes bearer tokens.
type Service interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
	Revoke(ctx context.Context, token, userID string) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type signer interface {
	Sign(userID, email string) (string, error)
	Verify(token string) (*jwtinfra.Claims, error)
	Decode(token string) (*jwtinfra.Claims, error)
}

// revocationStore is satisfied by the DynamoDB and Redis backends.
type revocationStore interface {
	Revoke(ctx context.Context, token, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type service struct {
	signer  signer
	revoked revocationStore
	expiry  time.Duration
	now     func() time.Time
}

type ServiceDeps struct {
	Signer      signer
	Revocations revocationStore
	// Expiry is used when a revoked token carries no exp claim.
	Expiry time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		signer:  deps.Signer,
		revoked: deps.Revocations,
		expiry:  deps.Expiry,
		now:     time.Now,
	}
}

func (s *service) Issue(userID, email string) (string, error) {
	tok, err := s.signer.Sign(userID, email)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tok, nil
}

func (s *service) Verify(token string) (*jwtinfra.Claims, error) {
	return s.signer.Verify(token)
}

// Revoke records token in the revocation set until the expiry found in its claims.
func (s *service) Revoke(ctx context.Context, token, userID string) error {
	expiresAt := s.now().Add(s.expiry)
	if claims, err := s.signer.Decode(token); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.revoked.Revoke(ctx, token, userID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (s *service) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := s.revoked.IsRevoked(ctx, token)
	if err != nil {
		return false, fmt.Errorf("check revocation: %w", err)
	}
	return revoked, nil
}
