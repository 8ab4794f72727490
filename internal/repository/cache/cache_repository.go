package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	statsKey         = "explorer:stats:current"
	filterOptionsKey = "explorer:filtros:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetStats получает статистику из кеша
func (r *cacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	ok, err := r.getJSON(ctx, statsKey, &stats)
	if err != nil || !ok {
		return nil, err
	}
	return &stats, nil
}

// SetStats сохраняет статистику в кеше
func (r *cacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	return r.setJSON(ctx, statsKey, stats, ttl)
}

// GetFilterOptions получает списки каскада; ключ строится из уровня каскада
func (r *cacheRepository) GetFilterOptions(ctx context.Context, scope domain.CascadeScope) (*domain.FilterOptions, error) {
	var opts domain.FilterOptions
	ok, err := r.getJSON(ctx, filterOptionsCacheKey(scope), &opts)
	if err != nil || !ok {
		return nil, err
	}
	return &opts, nil
}

func (r *cacheRepository) SetFilterOptions(ctx context.Context, scope domain.CascadeScope, opts *domain.FilterOptions, ttl time.Duration) error {
	return r.setJSON(ctx, filterOptionsCacheKey(scope), opts, ttl)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil // Cache miss
	}

	if err := json.Unmarshal(data, out); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.Set(ctx, key, data, ttl)
}

func filterOptionsCacheKey(scope domain.CascadeScope) string {
	return filterOptionsKey + strings.Join([]string{scope.Country, scope.Region, scope.Province}, "|")
}
