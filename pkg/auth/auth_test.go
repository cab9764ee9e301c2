package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarpov/online-store/pkg/auth"
)

func TestGenerateAndValidateToken(t *testing.T) {
	auth.Configure("unit-test-secret", time.Minute)

	token, err := auth.GenerateToken(42, "gopher", "seller")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "gopher", claims.Username)
	assert.Equal(t, "seller", claims.Role)
}

func TestValidateToken_Garbage(t *testing.T) {
	auth.Configure("unit-test-secret", time.Minute)

	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	auth.Configure("first-secret", time.Minute)
	token, err := auth.GenerateToken(1, "gopher", "user")
	require.NoError(t, err)

	auth.Configure("second-secret", time.Minute)
	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	auth.Configure("unit-test-secret", time.Nanosecond)
	token, err := auth.GenerateToken(1, "gopher", "user")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = auth.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := auth.HashPassword("s3cure-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cure-pass", hashed)

	assert.True(t, auth.CheckPassword(hashed, "s3cure-pass"))
	assert.False(t, auth.CheckPassword(hashed, "wrong-pass"))
}
