package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashVerify_RoundTrip(t *testing.T) {
	for _, plain := range []string{"abcd1234", "a1b2", "Zz9"} {
		h, err := Hash(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, h)

		ok, err := Verify(plain, h)
		require.NoError(t, err)
		assert.True(t, ok, plain)

		ok, err = Verify(plain+"x", h)
		require.NoError(t, err)
		assert.False(t, ok, plain)
	}
}

func TestHash_UsesFixedCost(t *testing.T) {
	h, err := Hash("abcd1234")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(h))
	require.NoError(t, err)
	assert.Equal(t, Cost, cost)
}

func TestHash_IsSalted(t *testing.T) {
	h1, err := Hash("abcd1234")
	require.NoError(t, err)
	h2, err := Hash("abcd1234")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerify_MalformedHash(t *testing.T) {
	ok, err := Verify("abcd1234", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestHashVerify_LongPassword(t *testing.T) {
	long := strings.Repeat("a1", 40)
	h, err := Hash(long)
	require.NoError(t, err)

	ok, err := Verify(long, h)
	require.NoError(t, err)
	assert.True(t, ok)

	// Inputs sharing the first 72 bytes must still differ.
	ok, err = Verify(long[:72], h)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Verify(long+"b2", h)
	require.NoError(t, err)
	assert.False(t, ok)
}
