package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("changeme123")
	require.NoError(t, err)
	assert.NotEqual(t, "changeme123", hash)

	assert.True(t, Verify("changeme123", hash))
	assert.False(t, Verify("wrong", hash))
}

func TestHashToken_Deterministic(t *testing.T) {
	a := HashToken("refresh-token")
	b := HashToken("refresh-token")
	c := HashToken("other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64, "sha256 hex")
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword("short"))
	assert.True(t, ValidatePassword("longenough"))
}
