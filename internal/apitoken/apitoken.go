// Package apitoken issues and validates the bearer tokens for the JSON API.
// Tokens are HS256 JWTs carrying the admin identity; only officers can
// obtain one.
package apitoken

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "taxonline/pkg/domain-errors"
)

const issuer = "taxonline"

// Claims carried by an API token.
type Claims struct {
	AdminID string `json:"admin_id"`
	Email   string `json:"email"`
	jwt.RegisteredClaims
}

// Service signs and validates API tokens.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewService(signingKey string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
}

// Issue signs a token for the given officer.
func (s *Service) Issue(adminID int64, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		AdminID: strconv.FormatInt(adminID, 10),
		Email:   email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a token string.
func (s *Service) Validate(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// FromAuthHeader validates the token in an Authorization: Bearer header.
func (s *Service) FromAuthHeader(header string) (*Claims, error) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token")
	}
	return s.Validate(strings.TrimPrefix(header, prefix))
}
