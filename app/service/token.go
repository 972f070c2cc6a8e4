package service

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/haneul-labs/daily-record/app/entity"
	"github.com/haneul-labs/daily-record/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims is the payload of a signed access token: subject carries the
// username, authority the user's role.
type AccessClaims struct {
	Authority string `json:"authority"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies access tokens with the configured HS256
// secret and derives the cookie max-ages from the configured lifetimes.
type TokenCodec struct {
	cfg *config.Config
}

func NewTokenCodec(cfg *config.Config) *TokenCodec {
	return &TokenCodec{cfg: cfg}
}

func (c *TokenCodec) SignAccessToken(username string, authority entity.Authority) (string, error) {
	now := time.Now()
	claims := &AccessClaims{
		Authority: string(authority),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(c.cfg.AccessTokenExpireMins) * time.Minute)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(c.cfg.JWTSecret))
}

// ParseAccessToken verifies the signature and expiry; any failure surfaces as
// an error, there is no degraded result.
func (c *TokenCodec) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(c.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid access token")
	}

	return claims, nil
}

func (c *TokenCodec) AccessTokenMaxAgeSeconds() int64 {
	return c.cfg.AccessTokenExpireMins * 60
}

func (c *TokenCodec) RefreshTokenMaxAgeSeconds() int64 {
	return c.cfg.RefreshTokenExpireDays * 24 * 60 * 60
}

// HashToken is the one-way hash under which refresh tokens are stored; the
// raw token never reaches the database.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// NewRefreshTokenString mints an opaque 32-hex-char refresh token.
func NewRefreshTokenString() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
