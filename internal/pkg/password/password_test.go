package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librental/internal/pkg/password"
)

func Test_Hash_And_Verify(t *testing.T) {
	hash, err := password.Hash("correct horse battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery", hash)

	assert.True(t, password.Verify("correct horse battery", hash))
	assert.False(t, password.Verify("wrong password", hash))
}

func Test_HashToken_Is_Deterministic(t *testing.T) {
	a := password.HashToken("some-refresh-token")
	b := password.HashToken("some-refresh-token")
	c := password.HashToken("another-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64) // hex-encoded SHA256
}

func Test_ValidatePassword(t *testing.T) {
	assert.True(t, password.ValidatePassword("12345678"))
	assert.False(t, password.ValidatePassword("1234567"))
	assert.False(t, password.ValidatePassword(""))
}
