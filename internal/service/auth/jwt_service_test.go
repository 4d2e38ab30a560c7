package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/FavasCherukunnu/ecomm-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-that-is-32-chars-long"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	}
}

// serviceAtTime builds a service whose clock is pinned to the given instant.
func serviceAtTime(at time.Time) *hmacJWTService {
	return &hmacJWTService{
		signingKey:    []byte(testSecret),
		tokenLifetime: time.Hour,
		timeFunc:      func() time.Time { return at },
		clockSkew:     2 * time.Minute,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)
		assert.NotNil(t, svc)
	})

	t.Run("short secret rejected", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.JWTSecret = "tooshort"
		svc, err := NewJWTService(cfg)
		assert.Error(t, err)
		assert.Nil(t, svc)
	})
}

func TestGenerateToken(t *testing.T) {
	svc, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	token, err := svc.GenerateToken(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Len(t, strings.Split(token, "."), 3, "JWTs have three segments")
}

func TestValidateToken(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("round trip", func(t *testing.T) {
		issued := time.Now().UTC().Truncate(time.Second)
		svc := serviceAtTime(issued)

		token, err := svc.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		claims, err := svc.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, userID.Hex(), claims.Subject)
		assert.NotEmpty(t, claims.ID, "tokens carry a unique jti")
		assert.WithinDuration(t, issued.Add(time.Hour), claims.ExpiresAt, time.Second)
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		token, err := serviceAtTime(past).GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		_, err = serviceAtTime(time.Now()).ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token just past expiry stays valid within skew", func(t *testing.T) {
		issued := time.Now()
		token, err := serviceAtTime(issued).GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		_, err = serviceAtTime(issued.Add(time.Hour + time.Minute)).ValidateToken(context.Background(), token)
		assert.NoError(t, err, "expiry within the clock skew window is tolerated")
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other := &hmacJWTService{
			signingKey:    []byte("a-completely-different-32-char-key!!"),
			tokenLifetime: time.Hour,
			timeFunc:      time.Now,
			clockSkew:     2 * time.Minute,
		}
		token, err := other.GenerateToken(context.Background(), userID)
		require.NoError(t, err)

		_, err = serviceAtTime(time.Now()).ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := serviceAtTime(time.Now()).ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token rejected", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwtCustomClaims{
			UserID: userID,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = serviceAtTime(time.Now()).ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token without uid claim rejected", func(t *testing.T) {
		bare := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		token, err := bare.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = serviceAtTime(time.Now()).ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
