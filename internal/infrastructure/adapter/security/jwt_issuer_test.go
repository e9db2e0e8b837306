package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/fraud-scoring/internal/domain/error"
)

const testSecret = "test-secret"

// fakeClock is a settable clock
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time                  { return c.now }
func (c *fakeClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c *fakeClock) Sleep(d time.Duration)           { c.now = c.now.Add(d) }

func newIssuer(t *testing.T, ttl time.Duration) (*JWTIssuer, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	issuer, err := NewJWTIssuer(testSecret, ttl, clock)
	require.NoError(t, err)
	return issuer, clock
}

func signed(t *testing.T, method jwt.SigningMethod, claims jwt.Claims) string {
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestJWTIssuer_IssueAndVerify(t *testing.T) {
	issuer, clock := newIssuer(t, time.Hour)

	token, expiresAt, err := issuer.Issue("42")
	require.NoError(t, err)
	assert.Equal(t, clock.now.Add(time.Hour), expiresAt)

	subject, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "42", subject)

	clock.Sleep(59 * time.Minute)
	_, err = issuer.Verify(token)
	assert.NoError(t, err)
}

func TestJWTIssuer_Expiry(t *testing.T) {
	t.Run("Token is rejected exactly at exp", func(t *testing.T) {
		issuer, clock := newIssuer(t, time.Hour)
		token, _, err := issuer.Issue("42")
		require.NoError(t, err)

		clock.Sleep(time.Hour)
		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Zero TTL tokens are never valid", func(t *testing.T) {
		issuer, _ := newIssuer(t, 0)
		token, _, err := issuer.Issue("42")
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("Negative TTL is a configuration error", func(t *testing.T) {
		_, err := NewJWTIssuer(testSecret, -time.Second, &fakeClock{})
		assert.Error(t, err)
	})
}

func TestJWTIssuer_RejectsTamperedTokens(t *testing.T) {
	issuer, clock := newIssuer(t, time.Hour)
	exp := jwt.NewNumericDate(clock.now.Add(time.Hour))

	other, err := NewJWTIssuer("another-secret", time.Hour, clock)
	require.NoError(t, err)
	foreign, _, err := other.Issue("42")
	require.NoError(t, err)

	testCases := map[string]string{
		"wrong secret":  foreign,
		"malformed":     "not.a.jwt",
		"empty":         "",
		"other alg":     signed(t, jwt.SigningMethodHS512, jwt.RegisteredClaims{Subject: "42", ExpiresAt: exp}),
		"missing exp":   signed(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "42"}),
		"empty subject": signed(t, jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: exp}),
		"unsigned":      mustNone(t, jwt.RegisteredClaims{Subject: "42", ExpiresAt: exp}),
	}

	for name, token := range testCases {
		t.Run(name, func(t *testing.T) {
			subject, err := issuer.Verify(token)
			assert.ErrorIs(t, err, errs.ErrUnauthorized)
			assert.Empty(t, subject)
		})
	}
}

func mustNone(t *testing.T, claims jwt.Claims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	return token
}

func TestNewJWTIssuer_EmptySecret(t *testing.T) {
	_, err := NewJWTIssuer("", time.Hour, &fakeClock{})
	assert.ErrorIs(t, err, ErrEmptySecret)
}
