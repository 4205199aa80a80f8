package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevokedToken_ActiveAt(t *testing.T) {
	now := time.Unix(1_800_000_000, 0)
	rt := RevokedToken{Token: "t", ExpiresAt: now.Unix() + 60}

	assert.True(t, rt.ActiveAt(now))
	assert.False(t, rt.ActiveAt(now.Add(time.Minute)))
	assert.False(t, rt.ActiveAt(now.Add(time.Hour)))
}
