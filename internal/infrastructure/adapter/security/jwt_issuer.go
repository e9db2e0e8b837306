package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/core"
	"github.com/amirhossein-jamali/fraud-scoring/internal/domain/port/security"
)

// DefaultTokenTTL is used when no TTL is configured
const DefaultTokenTTL = 24 * time.Hour

// ErrEmptySecret is returned when the issuer is built without a signing secret
var ErrEmptySecret = errors.New("jwt secret must not be empty")

// JWTIssuer signs and verifies HS256 access tokens
type JWTIssuer struct {
	secret       []byte
	ttl          time.Duration
	timeProvider core.TimeProvider
	parser       *jwt.Parser
}

// NewJWTIssuer creates an issuer; a negative ttl is rejected and zero issues
// tokens that are already expired
func NewJWTIssuer(secret string, ttl time.Duration, timeProvider core.TimeProvider) (*JWTIssuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl < 0 {
		return nil, fmt.Errorf("jwt ttl must not be negative, got %s", ttl)
	}

	return &JWTIssuer{
		secret:       []byte(secret),
		ttl:          ttl,
		timeProvider: timeProvider,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(timeProvider.Now),
		),
	}, nil
}

// Issue signs a token for subject expiring ttl from now
func (i *JWTIssuer) Issue(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errs.ErrUnauthorized
	}

	now := i.timeProvider.Now()
	expiresAt := now.Add(i.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt.Truncate(time.Second), nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
// A token is valid only while now < exp; exp is stored with second precision.
func (i *JWTIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := i.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		return "", errs.ErrUnauthorized
	}

	if claims.Subject == "" {
		return "", errs.ErrUnauthorized
	}

	return claims.Subject, nil
}

var _ security.TokenIssuer = (*JWTIssuer)(nil)
