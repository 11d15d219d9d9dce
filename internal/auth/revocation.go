package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedTokenKeyPrefix = "fitlog-revoked-token||"

// RevocationStore keeps revoked token IDs in redis until the token would expire anyway.
type RevocationStore struct {
	redisClient *redis.Client
}

func NewRevocationStore(redisClient *redis.Client) *RevocationStore {
	return &RevocationStore{
		redisClient: redisClient,
	}
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to remember
		return nil
	}
	return s.redisClient.Set(ctx, revokedTokenKeyPrefix+tokenID, userID, ttl).Err()
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := s.redisClient.Exists(ctx, revokedTokenKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
