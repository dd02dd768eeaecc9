package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateExtractsIdentity(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	signed := signToken(t, testSecret, jwt.MapClaims{
		"sub":   "user-123",
		"email": "dev@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{
			"user_name": "octocat",
			"full_name": "Octo Cat",
		},
	})

	user, err := validator.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", user.ID)
	assert.Equal(t, "dev@example.com", user.Email)
	assert.Equal(t, "octocat", user.Username)
	assert.Equal(t, "Octo Cat", user.FullName)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	signed := signToken(t, "other-secret", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = validator.Validate(signed)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	signed := signToken(t, testSecret, jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err = validator.Validate(signed)
	assert.Error(t, err)
}

func TestValidateRequiresSubject(t *testing.T) {
	validator, err := NewJWTValidator(JWTConfig{SecretKey: testSecret})
	require.NoError(t, err)

	signed := signToken(t, testSecret, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	_, err = validator.Validate(signed)
	assert.Error(t, err)
}

func TestNewJWTValidatorRequiresSecret(t *testing.T) {
	_, err := NewJWTValidator(JWTConfig{})
	assert.Error(t, err)
}
