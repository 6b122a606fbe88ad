package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gourmetcare/platform/internal/core/domain"
)

const defaultTokenTTL = 30 * 24 * time.Hour

// TokenService signs and verifies HS256 access tokens carrying the user's
// identifier as the subject claim.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

func (s *TokenService) Issue(identifier string) (string, error) {
	if len(s.secret) == 0 {
		return "", domain.ErrSecretNotConfigured
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   identifier,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) Verify(token string) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, domain.ErrSecretNotConfigured
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", time.Time{}, domain.ErrTokenExpired
		}
		return "", time.Time{}, domain.ErrInvalidToken
	}
	if !tkn.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return "", time.Time{}, domain.ErrInvalidToken
	}

	return claims.Subject, claims.ExpiresAt.Time, nil
}
