package service

import (
	"strings"
	"testing"

	"hospital-assistant/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateConnectionUnconfigured(t *testing.T) {
	s := NewRoomTokenService(config.LiveKitConfig{})

	assert.False(t, s.IsConfigured())
	_, err := s.GenerateConnection("user", "Visitor")
	assert.ErrorIs(t, err, ErrLiveKitNotConfigured)
}

func TestGenerateConnection(t *testing.T) {
	cfg := config.LiveKitConfig{
		URL:       "wss://media.hospital.example",
		APIKey:    "api-key",
		APISecret: "api-secret",
	}
	s := NewRoomTokenService(cfg)
	require.True(t, s.IsConfigured())

	conn, err := s.GenerateConnection("patient-42", "Asha Verma")
	require.NoError(t, err)
	assert.Equal(t, cfg.URL, conn.URL)
	assert.True(t, strings.HasPrefix(conn.Room, "hospital-assistant-"))

	claims := &roomTokenClaims{}
	token, err := jwt.ParseWithClaims(conn.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.APISecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "api-key", claims.Issuer)
	assert.Equal(t, "patient-42", claims.Subject)
	assert.Equal(t, "Asha Verma", claims.Name)
	assert.True(t, claims.Video.RoomJoin)
	assert.Equal(t, conn.Room, claims.Video.Room)
}

func TestGenerateConnectionDefaultsAnonymousVisitor(t *testing.T) {
	s := NewRoomTokenService(config.LiveKitConfig{
		URL:       "wss://media.hospital.example",
		APIKey:    "api-key",
		APISecret: "api-secret",
	})

	conn, err := s.GenerateConnection("", "")
	require.NoError(t, err)

	claims := &roomTokenClaims{}
	_, err = jwt.ParseWithClaims(conn.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("api-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user", claims.Subject)
	assert.Equal(t, "Hospital Visitor", claims.Name)
}

func TestGenerateConnectionRoomsAreUnique(t *testing.T) {
	s := NewRoomTokenService(config.LiveKitConfig{
		URL:       "wss://media.hospital.example",
		APIKey:    "api-key",
		APISecret: "api-secret",
	})

	first, err := s.GenerateConnection("user", "")
	require.NoError(t, err)
	second, err := s.GenerateConnection("user", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.Room, second.Room)
}
