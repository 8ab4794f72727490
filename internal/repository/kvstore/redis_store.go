package kvstore

import (
	"context"
	"fmt"

	"github.com/heritage-explorer/internal/domain/repository"
	"github.com/heritage-explorer/internal/repository/cache"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "explorer:kv:"

// RedisStore хранит пары в Redis; MultiSet и MultiRemove выполняются в MULTI/EXEC
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

var _ repository.KeyValueStore = (*RedisStore)(nil)

func NewRedisStore(r *cache.Redis, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: r.Client(),
		logger: logger,
	}
}

func (s *RedisStore) MultiGet(ctx context.Context, keys ...string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	vals, err := s.client.MGet(ctx, prefixed(keys)...).Result()
	if err != nil {
		s.logger.Error("Failed to read keys", zap.Strings("keys", keys), zap.Error(err))
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	for i, v := range vals {
		// отсутствующий ключ приходит как nil
		if str, ok := v.(string); ok {
			result[keys[i]] = str
		}
	}
	return result, nil
}

func (s *RedisStore) MultiSet(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	pairs := make([]interface{}, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, redisKeyPrefix+k, v)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.MSet(ctx, pairs...)
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to write keys", zap.Error(err))
		return fmt.Errorf("redis mset: %w", err)
	}
	return nil
}

func (s *RedisStore) MultiRemove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, prefixed(keys)...)
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to remove keys", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close не закрывает клиента: соединением владеет cache.Redis
func (s *RedisStore) Close() error {
	return nil
}

func prefixed(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = redisKeyPrefix + k
	}
	return out
}
