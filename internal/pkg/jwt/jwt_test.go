package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librental/internal/pkg/jwt"
)

const (
	testSecret        = "test_secret"
	testRefreshSecret = "test_refresh_secret"
)

func Test_AccessToken_RoundTrip(t *testing.T) {
	token, err := jwt.GenerateAccessToken(7, "jreader", "LIBRARIAN", testSecret, 15)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "jreader", claims.Username)
	assert.Equal(t, "LIBRARIAN", claims.Role)
	assert.Equal(t, "librental", claims.Issuer)
}

func Test_AccessToken_WrongSecret(t *testing.T) {
	token, err := jwt.GenerateAccessToken(7, "jreader", "USER", testSecret, 15)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, "other_secret")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}

func Test_AccessToken_Expired(t *testing.T) {
	token, err := jwt.GenerateAccessToken(7, "jreader", "USER", testSecret, -1)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func Test_RefreshToken_RoundTrip(t *testing.T) {
	token, err := jwt.GenerateRefreshToken(7, "token-id-1", testRefreshSecret, 7)
	require.NoError(t, err)

	claims, err := jwt.ValidateRefreshToken(token, testRefreshSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "token-id-1", claims.TokenID)
}

func Test_RefreshToken_NotValidAsAccessToken_Secret(t *testing.T) {
	token, err := jwt.GenerateRefreshToken(7, "token-id-1", testRefreshSecret, 7)
	require.NoError(t, err)

	_, err = jwt.ValidateRefreshToken(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
