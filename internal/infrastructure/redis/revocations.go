// Package redisinfra keeps revoked bearer tokens in Redis.
package redisinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/homefix-api/internal/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "revoked:"

// RevocationStore records logged-out tokens with a TTL matching their remaining lifetime.
type RevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewClient connects to Redis and verifies the connection with PING.
func NewClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	return client, nil
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client, now: time.Now}
}

// Revoke stores token until expiresAt. Tokens already past expiry are not stored.
func (s *RevocationStore) Revoke(ctx context.Context, token, userID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis set revoked token: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists revoked token: %w", err)
	}
	return n > 0, nil
}

func revokedKey(token string) string {
	return keyPrefix + token
}
