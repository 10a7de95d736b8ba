package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizforge/qbank-backend/internal/config"
	"github.com/quizforge/qbank-backend/internal/model"
)

// Common auth errors.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Claims extends JWT standard claims with app-specific fields.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"user_id"`
}

// AuthService handles authentication, JWT, and session-origin baselines.
type AuthService struct {
	cfg *config.Config
	rdb *redis.Client
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config, rdb *redis.Client) *AuthService {
	return &AuthService{cfg: cfg, rdb: rdb}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// GenerateToken creates a JWT for an author and records the session-origin
// baseline in Redis with the same expiry as the token. The baseline is what
// the session integrity guard later compares requests against.
func (s *AuthService) GenerateToken(ctx context.Context, authorID int, origin model.SessionOrigin) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   strconv.Itoa(authorID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiry)),
		},
		UserID: authorID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	raw, err := json.Marshal(origin)
	if err != nil {
		return "", fmt.Errorf("marshal baseline: %w", err)
	}
	key := config.CacheKey.SessionBaselineKey(authorID)
	if err := s.rdb.Set(ctx, key, raw, s.cfg.JWTExpiry).Err(); err != nil {
		return "", fmt.Errorf("store baseline: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// Baseline loads the session-origin baseline for a user, or (nil, nil)
// when none is recorded. Implements guard.BaselineSource.
func (s *AuthService) Baseline(ctx context.Context, userID int) (*model.SessionOrigin, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.SessionBaselineKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load baseline: %w", err)
	}

	var origin model.SessionOrigin
	if err := json.Unmarshal(raw, &origin); err != nil {
		return nil, fmt.Errorf("decode baseline: %w", err)
	}
	return &origin, nil
}

// ClearBaseline removes a user's session baseline (logout / admin reset).
func (s *AuthService) ClearBaseline(ctx context.Context, userID int) error {
	return s.rdb.Del(ctx, config.CacheKey.SessionBaselineKey(userID)).Err()
}
