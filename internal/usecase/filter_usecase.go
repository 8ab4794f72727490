package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"go.uber.org/zap"
)

// FilterListener получает критерии после каждого изменения
type FilterListener func(domain.FilterCriteria)

// FilterUseCase хранит текущие критерии поиска и списки каскада.
// Изменение уровня каскада очищает все зависимые поля и перезагружает
// списки ровно один раз для нового уровня.
type FilterUseCase struct {
	monumentRepo repository.MonumentRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
	logger       *zap.Logger

	mu        sync.RWMutex
	criteria  domain.FilterCriteria
	options   domain.FilterOptions
	listeners []FilterListener
}

// NewFilterUseCase создает новый экземпляр FilterUseCase. cacheRepo может быть nil.
func NewFilterUseCase(
	monumentRepo repository.MonumentRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *FilterUseCase {
	return &FilterUseCase{
		monumentRepo: monumentRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
		logger:       logger,
		criteria:     DefaultCriteria(),
	}
}

// DefaultCriteria - состояние после сброса
func DefaultCriteria() domain.FilterCriteria {
	return domain.FilterCriteria{
		Sort:  domain.DefaultSort,
		Page:  1,
		Limit: domain.DefaultPageSize,
	}
}

// LoadOptions загружает списки для текущего уровня каскада (при старте)
func (uc *FilterUseCase) LoadOptions(ctx context.Context) error {
	return uc.reloadOptions(ctx, uc.scope())
}

// SetCountry очищает регион, провинцию, муниципалитет и классификацию
func (uc *FilterUseCase) SetCountry(ctx context.Context, country string) error {
	changed := uc.mutate(func(f *domain.FilterCriteria) bool {
		if f.Country == country {
			return false
		}
		f.Country = country
		f.Region, f.Province, f.Municipality = "", "", ""
		clearClassification(f)
		return true
	})
	if !changed {
		return nil
	}
	return uc.reloadOptions(ctx, domain.CascadeScope{Country: country})
}

// SetRegion очищает провинцию, муниципалитет и классификацию
func (uc *FilterUseCase) SetRegion(ctx context.Context, region string) error {
	var scope domain.CascadeScope
	changed := uc.mutate(func(f *domain.FilterCriteria) bool {
		if f.Region == region {
			return false
		}
		f.Region = region
		f.Province, f.Municipality = "", ""
		clearClassification(f)
		scope = domain.CascadeScope{Country: f.Country, Region: region}
		return true
	})
	if !changed {
		return nil
	}
	return uc.reloadOptions(ctx, scope)
}

// SetProvince очищает муниципалитет и классификацию
func (uc *FilterUseCase) SetProvince(ctx context.Context, province string) error {
	var scope domain.CascadeScope
	changed := uc.mutate(func(f *domain.FilterCriteria) bool {
		if f.Province == province {
			return false
		}
		f.Province = province
		f.Municipality = ""
		clearClassification(f)
		scope = domain.CascadeScope{Country: f.Country, Region: f.Region, Province: province}
		return true
	})
	if !changed {
		return nil
	}
	return uc.reloadOptions(ctx, scope)
}

func (uc *FilterUseCase) SetMunicipality(municipality string) {
	uc.setField(func(f *domain.FilterCriteria) *string { return &f.Municipality }, municipality)
}

func (uc *FilterUseCase) SetCategory(category string) {
	uc.setField(func(f *domain.FilterCriteria) *string { return &f.Category }, category)
}

func (uc *FilterUseCase) SetType(typ string) {
	uc.setField(func(f *domain.FilterCriteria) *string { return &f.Type }, typ)
}

func (uc *FilterUseCase) SetStyle(style string) {
	uc.setField(func(f *domain.FilterCriteria) *string { return &f.Style }, style)
}

func (uc *FilterUseCase) SetQuery(q string) {
	uc.setField(func(f *domain.FilterCriteria) *string { return &f.Query }, q)
}

func (uc *FilterUseCase) SetOnlyWikidata(v bool) {
	uc.mutate(func(f *domain.FilterCriteria) bool {
		if f.OnlyWikidata == v {
			return false
		}
		f.OnlyWikidata = v
		f.Page = 1
		return true
	})
}

func (uc *FilterUseCase) SetOnlyImage(v bool) {
	uc.mutate(func(f *domain.FilterCriteria) bool {
		if f.OnlyImage == v {
			return false
		}
		f.OnlyImage = v
		f.Page = 1
		return true
	})
}

// SetSort принимает только известные ключи сортировки
func (uc *FilterUseCase) SetSort(sortKey string) error {
	if !ValidSort(sortKey) {
		return apperrors.ErrInvalidRequest.WithMessage(fmt.Sprintf("unknown sort key %q", sortKey))
	}
	uc.mutate(func(f *domain.FilterCriteria) bool {
		if f.Sort == sortKey {
			return false
		}
		f.Sort = sortKey
		f.Page = 1
		return true
	})
	return nil
}

func (uc *FilterUseCase) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	uc.mutate(func(f *domain.FilterCriteria) bool {
		if f.Page == page {
			return false
		}
		f.Page = page
		return true
	})
}

func (uc *FilterUseCase) SetLimit(limit int) {
	if limit < 1 {
		limit = domain.DefaultPageSize
	}
	uc.mutate(func(f *domain.FilterCriteria) bool {
		if f.Limit == limit {
			return false
		}
		f.Limit = limit
		f.Page = 1
		return true
	})
}

// Apply заменяет критерии целиком. Если изменился уровень каскада,
// списки перезагружаются один раз для самого глубокого выбранного уровня.
func (uc *FilterUseCase) Apply(ctx context.Context, next domain.FilterCriteria) error {
	if next.Sort == "" {
		next.Sort = domain.DefaultSort
	}
	if !ValidSort(next.Sort) {
		return apperrors.ErrInvalidRequest.WithMessage(fmt.Sprintf("unknown sort key %q", next.Sort))
	}
	if next.Page < 1 {
		next.Page = 1
	}
	if next.Limit < 1 {
		next.Limit = domain.DefaultPageSize
	}

	var cascadeChanged bool
	uc.mutate(func(f *domain.FilterCriteria) bool {
		if *f == next {
			return false
		}
		cascadeChanged = f.Country != next.Country || f.Region != next.Region || f.Province != next.Province
		*f = next
		return true
	})
	if !cascadeChanged {
		return nil
	}
	return uc.reloadOptions(ctx, scopeOf(next))
}

// Reset возвращает критерии к значениям по умолчанию
func (uc *FilterUseCase) Reset(ctx context.Context) error {
	var cascadeChanged bool
	uc.mutate(func(f *domain.FilterCriteria) bool {
		cascadeChanged = f.Country != "" || f.Region != "" || f.Province != ""
		*f = DefaultCriteria()
		return true
	})
	if !cascadeChanged {
		return nil
	}
	return uc.reloadOptions(ctx, domain.CascadeScope{})
}

func (uc *FilterUseCase) Criteria() domain.FilterCriteria {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.criteria
}

func (uc *FilterUseCase) ActiveCount() int {
	return uc.Criteria().ActiveCount()
}

func (uc *FilterUseCase) Options() domain.FilterOptions {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.options
}

// VisibleOptions - списки, отфильтрованные по уже выбранным уровням
func (uc *FilterUseCase) VisibleOptions() domain.FilterOptions {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.options.Visible(uc.criteria)
}

// SearchMunicipalities ищет муниципалитеты в пределах текущего каскада
func (uc *FilterUseCase) SearchMunicipalities(ctx context.Context, query string) ([]domain.FilterOption, error) {
	result, err := uc.monumentRepo.GetMunicipalities(ctx, uc.scope(), query)
	if err != nil {
		return nil, fmt.Errorf("search municipalities: %w", err)
	}
	return result, nil
}

// Subscribe регистрирует слушателя изменений
func (uc *FilterUseCase) Subscribe(l FilterListener) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.listeners = append(uc.listeners, l)
}

func (uc *FilterUseCase) setField(field func(*domain.FilterCriteria) *string, value string) {
	uc.mutate(func(f *domain.FilterCriteria) bool {
		p := field(f)
		if *p == value {
			return false
		}
		*p = value
		f.Page = 1
		return true
	})
}

// mutate применяет fn под блокировкой и уведомляет слушателей, если fn вернула true
func (uc *FilterUseCase) mutate(fn func(f *domain.FilterCriteria) bool) bool {
	uc.mu.Lock()
	changed := fn(&uc.criteria)
	criteria := uc.criteria
	listeners := make([]FilterListener, len(uc.listeners))
	copy(listeners, uc.listeners)
	uc.mu.Unlock()

	if !changed {
		return false
	}
	for _, l := range listeners {
		l(criteria)
	}
	return true
}

// reloadOptions при ошибке оставляет предыдущие списки
func (uc *FilterUseCase) reloadOptions(ctx context.Context, scope domain.CascadeScope) error {
	opts, err := uc.fetchOptions(ctx, scope)
	if err != nil {
		uc.logger.Warn("Failed to reload filter options, keeping previous",
			zap.String("pais", scope.Country),
			zap.String("region", scope.Region),
			zap.String("provincia", scope.Province),
			zap.Error(err))
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	// ответ для уже сменившегося уровня не применяется
	if scopeOf(uc.criteria) != scope {
		uc.logger.Debug("Discarding filter options for superseded scope")
		return nil
	}
	uc.options = *opts
	return nil
}

func (uc *FilterUseCase) fetchOptions(ctx context.Context, scope domain.CascadeScope) (*domain.FilterOptions, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetFilterOptions(ctx, scope)
		if err == nil && cached != nil {
			uc.logger.Debug("Filter options fetched from cache")
			return cached, nil
		}
		if err != nil {
			uc.logger.Warn("Failed to get filter options from cache", zap.Error(err))
		}
	}

	opts, err := uc.monumentRepo.GetFilterOptions(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("get filter options: %w", err)
	}

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.SetFilterOptions(ctx, scope, opts, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache filter options", zap.Error(err))
		}
	}
	return opts, nil
}

func (uc *FilterUseCase) scope() domain.CascadeScope {
	return scopeOf(uc.Criteria())
}

func scopeOf(f domain.FilterCriteria) domain.CascadeScope {
	return domain.CascadeScope{Country: f.Country, Region: f.Region, Province: f.Province}
}

func clearClassification(f *domain.FilterCriteria) {
	f.Category, f.Type, f.Style = "", "", ""
	f.Page = 1
}

// ValidSort проверяет ключ сортировки /monumentos
func ValidSort(key string) bool {
	switch key {
	case domain.SortNameAsc, domain.SortNameDesc, domain.SortMunicipalityAsc, domain.SortMunicipalityDesc:
		return true
	}
	return false
}
