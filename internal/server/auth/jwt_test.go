package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/cortex-chat/cortex-server/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("u-1", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := GetUserIDFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
}

func TestGetUserIDFromToken_ExpiredToken(t *testing.T) {
	token, err := GenerateToken("u-1", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, testSecret)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}

func TestGetUserIDFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("u-1", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("other-secret"))
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}

func TestGetUserIDFromToken_Garbage(t *testing.T) {
	_, err := GetUserIDFromToken("not.a.jwt", testSecret)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}
