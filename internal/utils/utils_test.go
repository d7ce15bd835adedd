package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasetoMaker_RoundTrip(t *testing.T) {
	maker, err := NewPasetoMaker(GenerateSymmetricKey())
	require.NoError(t, err)

	token, err := maker.CreateToken("user-1", "janedoe", "jane@x.com", "sess-1", time.Hour)
	require.NoError(t, err)

	payload, err := maker.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", payload.UserID)
	assert.Equal(t, "janedoe", payload.Username)
	assert.Equal(t, "jane@x.com", payload.Email)
	assert.Equal(t, "sess-1", payload.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), payload.ExpiresAt, 5*time.Second)
}

func TestPasetoMaker_RejectsForeignKey(t *testing.T) {
	a, _ := NewPasetoMaker(GenerateSymmetricKey())
	b, _ := NewPasetoMaker(GenerateSymmetricKey())

	token, err := a.CreateToken("user-1", "u", "e", "s", time.Hour)
	require.NoError(t, err)

	_, err = b.VerifyToken(token)
	assert.Error(t, err)
}

func TestPasetoMaker_RejectsExpired(t *testing.T) {
	maker, _ := NewPasetoMaker(GenerateSymmetricKey())
	token, _ := maker.CreateToken("user-1", "u", "e", "s", -time.Minute)

	_, err := maker.VerifyToken(token)
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret12")
	require.NoError(t, err)
	assert.NotEqual(t, "secret12", hash)

	ok, err := CheckPassword(hash, "secret12")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "wrong")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestNewInviteCode(t *testing.T) {
	code, err := NewInviteCode()
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(inviteCodeAlphabet, r))
	}
}
