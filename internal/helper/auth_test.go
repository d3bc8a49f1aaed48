package helper

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	token, err := auth.GenerateToken(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	// the Bearer prefix is accepted too
	claims, err = auth.VerifyToken("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
}

func TestGenerateTokenRequiresInputs(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	_, err := auth.GenerateToken(0, "alice")
	assert.Error(t, err)
	_, err = auth.GenerateToken(42, "")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	token, err := SetupAuth("secret-a").GenerateToken(1, "bob")
	require.NoError(t, err)

	_, err = SetupAuth("secret-b").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	_, err := auth.VerifyToken("")
	assert.Error(t, err)
	_, err = auth.VerifyToken("not-a-token")
	assert.Error(t, err)
	_, err = auth.VerifyToken("Bearer ")
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	auth := SetupAuth("unit-test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	assert.NoError(t, auth.VerifyPassword("secret123", string(hash)))
	assert.Error(t, auth.VerifyPassword("wrong", string(hash)))
}

func TestGenerateOtpFormat(t *testing.T) {
	sixDigits := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 50; i++ {
		otp, err := GenerateOtp()
		require.NoError(t, err)
		assert.True(t, sixDigits.MatchString(otp), "got %q", otp)
	}
}
