// Package token issues and validates the signed session tokens that carry
// a logged-in user's identity between requests.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every validation failure: malformed,
// tampered, wrong algorithm, expired, or missing subject. Callers never
// learn which, so a probing client cannot distinguish the cases.
var ErrInvalidToken = errors.New("invalid token")

// Config defines token service settings.
type Config struct {
	SecretKey string
	Lifetime  time.Duration
	Issuer    string
}

// Service signs and verifies session tokens with a shared HMAC secret.
// Anyone holding the secret can forge tokens; the secret is the sole
// trust root.
type Service struct {
	config Config
	now    func() time.Time
}

// NewService creates a token service using the wall clock.
func NewService(config Config) *Service {
	return &Service{
		config: config,
		now:    time.Now,
	}
}

// NewServiceWithClock creates a token service with an injectable clock.
func NewServiceWithClock(config Config, now func() time.Time) *Service {
	return &Service{
		config: config,
		now:    now,
	}
}

// Issue produces a signed token embedding subject, expiring Lifetime after
// issuance.
func (s *Service) Issue(subject string) (string, error) {
	issuedAt := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.Lifetime)),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		Issuer:    s.config.Issuer,
		ID:        uuid.New().String(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(s.config.SecretKey))
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Validate verifies signature and expiry and returns the embedded subject.
func (s *Service) Validate(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrInvalidToken
	}

	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.SecretKey), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
