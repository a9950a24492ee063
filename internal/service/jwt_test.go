package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseJWT(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, userID)
}

func TestParseJWT_Garbage(t *testing.T) {
	InitJWT("test-secret")

	_, err := ParseJWT("not-a-token")
	assert.Error(t, err)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	InitJWT("secret-one")
	token, err := GenerateJWT(7)
	require.NoError(t, err)

	InitJWT("secret-two")
	_, err = ParseJWT(token)
	assert.Error(t, err)
}
