package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"hospital-assistant/pkg/jwt"
	"hospital-assistant/pkg/response"

	"github.com/redis/go-redis/v9"
)

type contextKey string

const (
	PatientKeyKey contextKey = "patient_key"
	UserEmailKey  contextKey = "user_email"
	UserNameKey   contextKey = "user_name"
	TokenIDKey    contextKey = "token_id"
)

// AuthMiddleware verifies Bearer tokens issued by the identity provider and
// rejects tokens the provider has since revoked. Revocations arrive as
// entries in a shared redis set keyed by token id.
type AuthMiddleware struct {
	jwtService  *jwt.JWTService
	redisClient *redis.Client
}

func NewAuthMiddleware(jwtService *jwt.JWTService, redisClient *redis.Client) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		redisClient: redisClient,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authentication required. Please sign in.")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		// Reject tokens the identity provider has revoked
		tokenKey := fmt.Sprintf("revoked_token:%s", claims.TokenID)
		revoked, err := m.redisClient.Exists(r.Context(), tokenKey).Result()
		if err != nil {
			response.InternalServerError(w, "Failed to validate token")
			return
		}
		if revoked > 0 {
			response.Unauthorized(w, "Token has been revoked")
			return
		}

		ctx := context.WithValue(r.Context(), PatientKeyKey, claims.Subject)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, UserNameKey, claims.Name)
		ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPatientKeyFromContext extracts the opaque patient key from context.
func GetPatientKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(PatientKeyKey).(string)
	return key, ok && key != ""
}

// GetUserEmailFromContext extracts the caller's email from context.
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok && email != ""
}

// GetUserNameFromContext extracts the caller's display name from context.
func GetUserNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(UserNameKey).(string)
	return name, ok
}
