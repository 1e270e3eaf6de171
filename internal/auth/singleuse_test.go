package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSingleUseToken(t *testing.T) {
	raw, hashed, err := GenerateSingleUseToken()
	require.NoError(t, err)

	assert.NotEmpty(t, raw)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, raw, hashed)

	// The stored hash is recomputable from the raw token
	assert.Equal(t, hashed, HashSingleUseToken(raw))
}

func TestGenerateSingleUseToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		raw, _, err := GenerateSingleUseToken()
		require.NoError(t, err)
		assert.False(t, seen[raw], "duplicate token generated")
		seen[raw] = true
	}
}

func TestHashSingleUseToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashSingleUseToken("abc"), HashSingleUseToken("abc"))
	assert.NotEqual(t, HashSingleUseToken("abc"), HashSingleUseToken("abd"))
}
