// internal/auth/auth_test.go
package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	secret := []byte("test-secret")
	id := uuid.New()

	token, err := CreateSessionToken(secret, id, "ABCD", "ana")
	require.NoError(t, err)

	claims, err := ParseSessionToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.PlayerID)
	assert.Equal(t, "ABCD", claims.RoomCode)
	assert.Equal(t, "ana", claims.Name)
}

func TestSessionTokenWrongSecretRejected(t *testing.T) {
	token, err := CreateSessionToken([]byte("right"), uuid.New(), "ABCD", "ana")
	require.NoError(t, err)

	_, err = ParseSessionToken([]byte("wrong"), token)
	assert.Error(t, err)
}
