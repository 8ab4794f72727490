package repository

import (
	"context"

	"github.com/heritage-explorer/internal/domain"
)

// GeoJSONQuery - параметры выборки точек для детального слоя карты
type GeoJSONQuery struct {
	Criteria domain.FilterCriteria
	Bounds   *domain.BoundingBox
	Limit    int
}

// MonumentRepository определяет методы чтения каталога с backend
type MonumentRepository interface {
	// GetStats возвращает сводные счётчики (/stats)
	GetStats(ctx context.Context) (*domain.Statistics, error)

	// ListMonuments возвращает страницу результатов поиска (/monumentos)
	ListMonuments(ctx context.Context, criteria domain.FilterCriteria) (*domain.MonumentPage, error)

	// GetMonument возвращает карточку объекта (/monumentos/:id)
	GetMonument(ctx context.Context, id int64) (*domain.Monument, error)

	// GetGeoJSON возвращает точки в прямоугольнике (/geojson)
	GetGeoJSON(ctx context.Context, q GeoJSONQuery) (*domain.FeatureCollection, error)

	// GetRegionSummary возвращает сводку по регионам (/ccaa-resumen)
	GetRegionSummary(ctx context.Context, country string) (*domain.FeatureCollection, error)

	// GetFilterOptions возвращает списки значений каскада (/filtros)
	GetFilterOptions(ctx context.Context, scope domain.CascadeScope) (*domain.FilterOptions, error)

	// GetMunicipalities ищет муниципалитеты (/municipios)
	GetMunicipalities(ctx context.Context, scope domain.CascadeScope, query string) ([]domain.FilterOption, error)
}
