package repository

import (
	"context"
	"time"

	"github.com/heritage-explorer/internal/domain"
)

// CacheRepository определяет методы для работы с кешем ответов backend
type CacheRepository interface {
	// Get получает значение из кеша по ключу; nil без ошибки - промах
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetStats получает статистику из кеша
	GetStats(ctx context.Context) (*domain.Statistics, error)

	// SetStats сохраняет статистику в кеше
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error

	// GetFilterOptions получает списки каскада для уровня scope
	GetFilterOptions(ctx context.Context, scope domain.CascadeScope) (*domain.FilterOptions, error)

	// SetFilterOptions сохраняет списки каскада
	SetFilterOptions(ctx context.Context, scope domain.CascadeScope, opts *domain.FilterOptions, ttl time.Duration) error
}
