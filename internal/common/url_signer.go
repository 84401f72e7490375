package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SignedRouteToken represents a presigned dashboard link token scoped to
// one route.
type SignedRouteToken struct {
	Origin      string
	Destination string
	TokenID     string
	ExpiresAt   time.Time
}

// URLSignerService generates and validates single-use presigned URLs for
// sharing a route's dashboard without credentials.
type URLSignerService struct {
	secretKey []byte
	redis     *redis.Client
}

// NewURLSignerService creates a new URL signer service
func NewURLSignerService(secretKey []byte, redis *redis.Client) *URLSignerService {
	return &URLSignerService{
		secretKey: secretKey,
		redis:     redis,
	}
}

// GenerateRouteToken generates a single-use presigned token for a route.
func (s *URLSignerService) GenerateRouteToken(origin, destination string, ttl time.Duration) (string, time.Time, error) {
	tokenID := uuid.New().String()
	expiresAt := time.Now().Add(ttl)

	claims := jwt.MapClaims{
		"origin":      origin,
		"destination": destination,
		"jti":         tokenID,
		"exp":         expiresAt.Unix(),
		"iat":         time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// ValidateToken validates a presigned dashboard token
func (s *URLSignerService) ValidateToken(ctx context.Context, tokenString string) (*SignedRouteToken, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	origin, ok := (*claims)["origin"].(string)
	if !ok {
		return nil, errors.New("missing or invalid origin claim")
	}

	destination, ok := (*claims)["destination"].(string)
	if !ok {
		return nil, errors.New("missing or invalid destination claim")
	}

	tokenID, ok := (*claims)["jti"].(string)
	if !ok {
		return nil, errors.New("missing or invalid jti claim")
	}

	expFloat, ok := (*claims)["exp"].(float64)
	if !ok {
		return nil, errors.New("missing or invalid exp claim")
	}
	expiresAt := time.Unix(int64(expFloat), 0)

	if time.Now().After(expiresAt) {
		return nil, errors.New("token expired")
	}

	isUsed, err := s.IsTokenUsed(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token usage: %w", err)
	}
	if isUsed {
		return nil, errors.New("token already used")
	}

	return &SignedRouteToken{
		Origin:      origin,
		Destination: destination,
		TokenID:     tokenID,
		ExpiresAt:   expiresAt,
	}, nil
}

// MarkTokenAsUsed marks a token as used (single-use enforcement)
func (s *URLSignerService) MarkTokenAsUsed(ctx context.Context, tokenID string) error {
	ttl := 15 * time.Minute

	if err := s.redis.Set(ctx, "used_token:"+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to mark token as used: %w", err)
	}

	return nil
}

// IsTokenUsed reports whether a token ID has been consumed already.
func (s *URLSignerService) IsTokenUsed(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.redis.Exists(ctx, "used_token:"+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
