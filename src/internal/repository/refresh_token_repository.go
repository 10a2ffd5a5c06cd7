package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisRefreshTokenRepository struct {
	Redis redis.UniversalClient
}

func NewRefreshTokenRepository(client redis.UniversalClient) *RedisRefreshTokenRepository {
	return &RedisRefreshTokenRepository{Redis: client}
}

func refreshTokenKey(userID, tokenID string) string {
	return fmt.Sprintf("AUTH:REFRESH:%s:%s", userID, tokenID)
}

func (r *RedisRefreshTokenRepository) Save(ctx context.Context, userID, tokenID string, ttl time.Duration) error {
	return r.Redis.Set(ctx, refreshTokenKey(userID, tokenID), "1", ttl).Err()
}

func (r *RedisRefreshTokenRepository) Consume(ctx context.Context, userID, tokenID string) (bool, error) {
	n, err := r.Redis.Del(ctx, refreshTokenKey(userID, tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
