package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/config"
)

const testSecret = "test-secret-key-thats-long-enough-for-hmac"

// newTestJWTService builds a service with a frozen clock so expiry tests
// are deterministic.
func newTestJWTService(now time.Time, lifetime time.Duration) *hmacJWTService {
	return &hmacJWTService{
		signingKey:    []byte(testSecret),
		tokenLifetime: lifetime,
		timeFunc:      func() time.Time { return now },
		clockSkew:     2 * time.Minute,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("accepts a sufficiently long secret", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeHours: 24})
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("rejects a short secret", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(config.AuthConfig{JWTSecret: "too-short", TokenLifetimeHours: 24})
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	svc := newTestJWTService(now, time.Hour)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		issuer := newTestJWTService(now, time.Hour)
		token, err := issuer.GenerateToken(ctx, 42)
		require.NoError(t, err)

		// Validate well past expiry and beyond the clock skew allowance.
		validator := newTestJWTService(now.Add(2*time.Hour), time.Hour)

		claims, err := validator.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.Nil(t, claims)
	})

	t.Run("expiry within clock skew is tolerated", func(t *testing.T) {
		t.Parallel()

		issuer := newTestJWTService(now, time.Hour)
		token, err := issuer.GenerateToken(ctx, 42)
		require.NoError(t, err)

		validator := newTestJWTService(now.Add(time.Hour+time.Minute), time.Hour)

		_, err = validator.ValidateToken(ctx, token)
		assert.NoError(t, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()

		issuer := newTestJWTService(now, time.Hour)
		token, err := issuer.GenerateToken(ctx, 42)
		require.NoError(t, err)

		validator := newTestJWTService(now, time.Hour)
		validator.signingKey = []byte("another-secret-key-thats-also-long-enough")

		claims, err := validator.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(now, time.Hour)

		claims, err := svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("non-positive user id", func(t *testing.T) {
		t.Parallel()

		svc := newTestJWTService(now, time.Hour)
		token, err := svc.GenerateToken(ctx, 0)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Nil(t, claims)
	})
}
