package domain

import "time"

// RevokedToken records a bearer token invalidated by logout.
// ExpiresAt is a Unix timestamp copied from the token and used as DynamoDB TTL.
type RevokedToken struct {
	Token     string    `json:"token" dynamodbav:"token"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

// ActiveAt reports whether the revocation still applies at now. It lapses
// together with the token it records.
func (rt RevokedToken) ActiveAt(now time.Time) bool {
	return rt.ExpiresAt > now.Unix()
}
