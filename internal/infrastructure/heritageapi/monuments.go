package heritageapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	"github.com/heritage-explorer/internal/pkg/utils"
)

var _ repository.MonumentRepository = (*Client)(nil)

// GetStats возвращает сводные счётчики каталога
func (c *Client) GetStats(ctx context.Context) (*domain.Statistics, error) {
	var stats domain.Statistics
	if err := c.do(ctx, request{endpoint: "stats", method: http.MethodGet, path: "/stats"}, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListMonuments возвращает страницу результатов поиска
func (c *Client) ListMonuments(ctx context.Context, criteria domain.FilterCriteria) (*domain.MonumentPage, error) {
	var page domain.MonumentPage
	err := c.do(ctx, request{
		endpoint: "monumentos.list",
		method:   http.MethodGet,
		path:     "/monumentos",
		query:    criteria.Params(),
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// GetMonument возвращает карточку объекта
func (c *Client) GetMonument(ctx context.Context, id int64) (*domain.Monument, error) {
	var m domain.Monument
	err := c.do(ctx, request{
		endpoint: "monumentos.get",
		method:   http.MethodGet,
		path:     "/monumentos/" + strconv.FormatInt(id, 10),
	}, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetGeoJSON возвращает точки детального слоя; bbox передаётся как minLon,minLat,maxLon,maxLat
func (c *Client) GetGeoJSON(ctx context.Context, q repository.GeoJSONQuery) (*domain.FeatureCollection, error) {
	params := q.Criteria.Params()
	// пагинация поиска к карте не относится
	params.Del("page")
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Bounds != nil {
		b := q.Bounds
		params.Set("bbox", utils.BBoxParam(b.MinLat, b.MinLon, b.MaxLat, b.MaxLon))
	}

	var fc domain.FeatureCollection
	err := c.do(ctx, request{
		endpoint: "geojson",
		method:   http.MethodGet,
		path:     "/geojson",
		query:    params,
	}, &fc)
	if err != nil {
		return nil, err
	}
	return &fc, nil
}

// GetRegionSummary возвращает сводку по регионам, опционально для одной страны
func (c *Client) GetRegionSummary(ctx context.Context, country string) (*domain.FeatureCollection, error) {
	params := url.Values{}
	if country != "" {
		params.Set("pais", country)
	}

	var fc domain.FeatureCollection
	err := c.do(ctx, request{
		endpoint: "ccaa-resumen",
		method:   http.MethodGet,
		path:     "/ccaa-resumen",
		query:    params,
	}, &fc)
	if err != nil {
		return nil, err
	}
	return &fc, nil
}

// GetFilterOptions возвращает списки каскада для уровня scope
func (c *Client) GetFilterOptions(ctx context.Context, scope domain.CascadeScope) (*domain.FilterOptions, error) {
	var opts domain.FilterOptions
	err := c.do(ctx, request{
		endpoint: "filtros",
		method:   http.MethodGet,
		path:     "/filtros",
		query:    scope.Params(),
	}, &opts)
	if err != nil {
		return nil, err
	}
	return &opts, nil
}

// GetMunicipalities ищет муниципалитеты в пределах scope
func (c *Client) GetMunicipalities(ctx context.Context, scope domain.CascadeScope, query string) ([]domain.FilterOption, error) {
	params := scope.Params()
	if query != "" {
		params.Set("q", query)
	}

	var result []domain.FilterOption
	err := c.do(ctx, request{
		endpoint: "municipios",
		method:   http.MethodGet,
		path:     "/municipios",
		query:    params,
	}, &result)
	if err != nil {
		return nil, err
	}
	return result, nil
}
