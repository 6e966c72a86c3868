package jwt

import (
	"testing"
	"time"

	"hospital-assistant/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	s := NewJWTService(config.JWTConfig{Secret: "test-secret", TokenExpiry: time.Hour})

	token, tokenID, err := s.GenerateToken("patient-42", "asha@example.com", "Asha Verma")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "patient-42", claims.Subject)
	assert.Equal(t, "asha@example.com", claims.Email)
	assert.Equal(t, "Asha Verma", claims.Name)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService(config.JWTConfig{Secret: "issuer-secret", TokenExpiry: time.Hour})
	verifier := NewJWTService(config.JWTConfig{Secret: "other-secret", TokenExpiry: time.Hour})

	token, _, err := issuer.GenerateToken("patient-42", "asha@example.com", "Asha Verma")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	s := NewJWTService(config.JWTConfig{Secret: "test-secret", TokenExpiry: -time.Minute})

	token, _, err := s.GenerateToken("patient-42", "asha@example.com", "Asha Verma")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	s := NewJWTService(config.JWTConfig{Secret: "test-secret", TokenExpiry: time.Hour})

	_, err := s.ValidateToken("not.a.token")
	assert.Error(t, err)
}
