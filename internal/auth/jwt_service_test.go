package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsroom/internal/model"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "", 0)
	user := &model.User{ID: 7, Username: "alice", Role: model.RoleJournalist}

	token, err := svc.GenerateToken(user)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.ID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "journalist", claims.Role)
	assert.Equal(t, DefaultIssuer, claims.Issuer)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenExpiry), claims.ExpiresAt.Time, time.Minute)
	assert.Equal(t, model.Actor{ID: 7, Username: "alice", Role: model.RoleJournalist}, claims.Actor())
}

func TestJWTService_MissingSecret(t *testing.T) {
	svc := NewJWTService("", "", time.Hour)
	_, err := svc.GenerateToken(&model.User{ID: 1})
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService("test-secret", "newsroom_app", time.Hour)
	user := &model.User{ID: 1, Username: "bob", Role: model.RoleReader}

	expired := NewJWTService("test-secret", "newsroom_app", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.GenerateToken(user)
	require.NoError(t, err)

	foreign := NewJWTService("test-secret", "someone_else", time.Hour)
	foreignToken, err := foreign.GenerateToken(user)
	require.NoError(t, err)

	otherKey := NewJWTService("other-secret", "newsroom_app", time.Hour)
	otherKeyToken, err := otherKey.GenerateToken(user)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{ID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":      expiredToken,
		"wrong issuer": foreignToken,
		"wrong key":    otherKeyToken,
		"unsigned":     noneToken,
		"malformed":    "not.a.token",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestTokenStore_NilCacheNeverRevokes(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	assert.ErrorIs(t, store.Revoke(ctx, "jti", time.Minute), ErrRevocationUnavailable)
	require.NoError(t, store.Revoke(ctx, "expired", -time.Minute))
	revoked, err := store.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}
