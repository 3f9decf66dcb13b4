package auth

import (
	"context"
	"errors"
	"time"

	"newsroom/internal/cache"
)

const revokedTokenKeyPrefix = "revoked_token:"

// ErrRevocationUnavailable is returned by Revoke when no Redis is configured.
// The token then stays valid until it expires.
var ErrRevocationUnavailable = errors.New("token revocation is not available")

// TokenStoreInterface defines revocation bookkeeping for issued tokens.
type TokenStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token ids in Redis until the token would have expired.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke marks a token id as unusable for ttl.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if !s.cache.Enabled() {
		return ErrRevocationUnavailable
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked reports whether a token id was revoked. A cache outage reads as not revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	data, err := s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
	if err != nil {
		return false, nil
	}
	return data != nil, nil
}
