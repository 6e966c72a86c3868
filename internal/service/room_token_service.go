package service

import (
	"errors"
	"fmt"
	"time"

	"hospital-assistant/config"
	"hospital-assistant/internal/delivery/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrLiveKitNotConfigured = errors.New("livekit credentials not configured")

const roomTokenTTL = 6 * time.Hour

// videoGrant mirrors the LiveKit access-token grant payload.
type videoGrant struct {
	RoomJoin bool   `json:"roomJoin"`
	Room     string `json:"room"`
}

type roomTokenClaims struct {
	Name  string     `json:"name"`
	Video videoGrant `json:"video"`
	jwt.RegisteredClaims
}

// RoomTokenService mints access tokens for the voice-assistant rooms so the
// media provider's API secret never reaches the browser.
type RoomTokenService struct {
	cfg config.LiveKitConfig
}

func NewRoomTokenService(cfg config.LiveKitConfig) *RoomTokenService {
	return &RoomTokenService{cfg: cfg}
}

// IsConfigured checks that all media-provider credentials are present.
func (s *RoomTokenService) IsConfigured() bool {
	return s.cfg.URL != "" && s.cfg.APIKey != "" && s.cfg.APISecret != ""
}

// GenerateConnection creates a fresh room and a token allowed to join it.
func (s *RoomTokenService) GenerateConnection(identity, name string) (*dto.ConnectionResponse, error) {
	if !s.IsConfigured() {
		return nil, ErrLiveKitNotConfigured
	}
	if identity == "" {
		identity = "user"
	}
	if name == "" {
		name = "Hospital Visitor"
	}

	room := fmt.Sprintf("hospital-assistant-%s", uuid.New().String()[:8])

	now := time.Now()
	claims := roomTokenClaims{
		Name:  name,
		Video: videoGrant{RoomJoin: true, Room: room},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.APIKey,
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(roomTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.APISecret))
	if err != nil {
		return nil, err
	}

	return &dto.ConnectionResponse{
		Token: signed,
		URL:   s.cfg.URL,
		Room:  room,
	}, nil
}
