// Package auth - токены устройств для маршрутов навигации и GPS.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims - токен привязан к одному устройству
type Claims struct {
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// Signer выпускает и проверяет токены HS256
type Signer struct {
	secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

func (s *Signer) MakeToken(deviceID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   deviceID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *Signer) ParseToken(tok string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.DeviceID == "" {
		return nil, fmt.Errorf("%w: no device_id claim", ErrInvalidToken)
	}
	return claims, nil
}

// ParseAuthorizationHeader разбирает значение "Bearer <token>"
func (s *Signer) ParseAuthorizationHeader(header string) (*Claims, error) {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return nil, ErrMissingToken
	}
	return s.ParseToken(strings.TrimSpace(header[len(prefix):]))
}
