package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundtrip(t *testing.T) {
	auth := SetupAuth("test-secret")

	token, err := auth.GenerateToken(7, "a@b.com")
	assert.NoError(t, err)

	claims, err := auth.VerifyToken("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)

	// bare token works too
	claims, err = auth.VerifyToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
}

func TestVerifyToken_RejectsGarbage(t *testing.T) {
	auth := SetupAuth("test-secret")

	_, err := auth.VerifyToken("")
	assert.Error(t, err)

	_, err = auth.VerifyToken("Bearer not.a.token")
	assert.Error(t, err)

	other := SetupAuth("other-secret")
	token, _ := other.GenerateToken(7, "a@b.com")
	_, err = auth.VerifyToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	auth := SetupAuth("test-secret")

	digest, err := auth.HashPassword("hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2", digest)

	assert.NoError(t, auth.VerifyPassword("hunter2", digest))
	assert.Error(t, auth.VerifyPassword("letmein", digest))
}
