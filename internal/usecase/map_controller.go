package usecase

import (
	"context"
	"sync"

	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	"github.com/heritage-explorer/internal/pkg/metrics"
	"go.uber.org/zap"
)

// MapMode - режим слоя карты
type MapMode string

const (
	ModeAggregate MapMode = "AGGREGATE"
	ModeDetail    MapMode = "DETAIL"
)

// MarkerLayers - полный набор слоёв для поверхности карты. Скрытый слой
// передаётся пустым; поверхность перерисовывает оба слоя целиком.
type MarkerLayers struct {
	Version    uint64
	Points     []domain.MapPoint
	Aggregates []domain.RegionAggregate
}

// MarkerSink получает слои каждый раз, когда меняется их состав
type MarkerSink interface {
	PublishMarkers(layers MarkerLayers)
}

// Navigator открывает карточку объекта по нажатию на маркер
type Navigator interface {
	NavigateToMonument(id int64)
}

// FilterSource - текущие критерии фильтра
type FilterSource interface {
	Criteria() domain.FilterCriteria
}

// MapSnapshot - состояние контроллера для экрана
type MapSnapshot struct {
	Mode       MapMode             `json:"mode"`
	Zoom       int                 `json:"zoom"`
	Bounds     *domain.BoundingBox `json:"bounds,omitempty"`
	Loading    bool                `json:"loading"`
	Points     int                 `json:"points"`
	Regions    int                 `json:"regions"`
	Monuments  int                 `json:"monuments"`
	Version    uint64              `json:"version"`
	Generation uint64              `json:"generation"`
	Center     domain.CountryView  `json:"default_view"`
}

// MapController переключает обзорный и детальный слои по масштабу
// и загружает данные для видимой области.
//
// Одновременно выполняется не больше одной детальной выборки; запросы,
// пришедшие во время выборки, отбрасываются. Каждая выборка помечается
// поколением; смена режима или фильтров увеличивает поколение, и ответы
// прошлых поколений не применяются.
type MapController struct {
	monumentRepo repository.MonumentRepository
	filters      FilterSource
	sink         MarkerSink
	navigator    Navigator
	tables       config.MapTables
	metrics      *metrics.Metrics
	logger       *zap.Logger

	mu              sync.Mutex
	ctx             context.Context
	mode            MapMode
	viewport        *domain.Viewport
	criteria        domain.FilterCriteria
	generation      uint64
	detailInFlight  bool
	aggregateFlight int
	points          []domain.MapPoint
	aggregates      []domain.RegionAggregate
	version         uint64

	wg sync.WaitGroup
}

// NewMapController создает контроллер в режиме AGGREGATE. m может быть nil.
func NewMapController(
	monumentRepo repository.MonumentRepository,
	filters FilterSource,
	sink MarkerSink,
	navigator Navigator,
	tables config.MapTables,
	m *metrics.Metrics,
	logger *zap.Logger,
) *MapController {
	c := &MapController{
		monumentRepo: monumentRepo,
		filters:      filters,
		sink:         sink,
		navigator:    navigator,
		tables:       tables,
		metrics:      m,
		logger:       logger,
		ctx:          context.Background(),
		mode:         ModeAggregate,
	}
	if filters != nil {
		c.criteria = filters.Criteria()
	}
	return c
}

// Start запускает начальную загрузку обзорного слоя. ctx ограничивает все
// последующие фоновые выборки.
func (c *MapController) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mode = ModeAggregate
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.logger.Info("Map controller started", zap.Int("zoom_threshold", c.tables.ZoomThreshold))
	c.fetchAggregates(gen)
}

// HandleRegionChange обрабатывает событие regionChange от поверхности карты
func (c *MapController) HandleRegionChange(vp domain.Viewport) {
	c.mu.Lock()
	c.viewport = &vp
	threshold := c.tables.ZoomThreshold

	switch {
	case c.mode == ModeAggregate && vp.Zoom >= threshold:
		c.mode = ModeDetail
		c.generation++
		c.logger.Debug("Switching to detail mode", zap.Int("zoom", vp.Zoom))
		c.publishLocked()
		c.mu.Unlock()
		c.requestDetail()

	case c.mode == ModeDetail && vp.Zoom < threshold:
		c.mode = ModeAggregate
		c.generation++
		gen := c.generation
		c.logger.Debug("Switching to aggregate mode", zap.Int("zoom", vp.Zoom))
		c.publishLocked()
		c.mu.Unlock()
		c.fetchAggregates(gen)

	case c.mode == ModeDetail:
		c.mu.Unlock()
		c.requestDetail()

	default:
		c.mu.Unlock()
	}
}

// HandleMarkerPress передаёт нажатие на маркер навигатору
func (c *MapController) HandleMarkerPress(id int64) {
	if id <= 0 {
		c.logger.Debug("Ignoring marker press without id")
		return
	}
	if c.navigator != nil {
		c.navigator.NavigateToMonument(id)
	}
}

// Refresh перезагружает видимый слой после смены фильтров
func (c *MapController) Refresh() {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	mode := c.mode
	c.mu.Unlock()

	if mode == ModeAggregate {
		c.fetchAggregates(gen)
		return
	}
	c.requestDetail()
}

// OnFilterChange подходит как FilterListener. Обзорный слой зависит только
// от страны; детальный - от всех критериев, кроме сортировки и пагинации.
func (c *MapController) OnFilterChange(next domain.FilterCriteria) {
	c.mu.Lock()
	prev := c.criteria
	c.criteria = next
	mode := c.mode
	c.mu.Unlock()

	if !affectsLayer(mode, prev, next) {
		return
	}
	c.Refresh()
}

func affectsLayer(mode MapMode, prev, next domain.FilterCriteria) bool {
	if mode == ModeAggregate {
		return prev.Country != next.Country
	}
	prev.Sort, prev.Page, prev.Limit = "", 0, 0
	next.Sort, next.Page, next.Limit = "", 0, 0
	return prev != next
}

// Snapshot возвращает текущее состояние
func (c *MapController) Snapshot() MapSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := MapSnapshot{
		Mode:       c.mode,
		Loading:    c.detailInFlight || c.aggregateFlight > 0,
		Points:     len(c.points),
		Regions:    len(c.aggregates),
		Version:    c.version,
		Generation: c.generation,
		Center:     c.DefaultView(c.filters.Criteria().Country),
	}
	if c.viewport != nil {
		b := c.viewport.Bounds
		snap.Zoom = c.viewport.Zoom
		snap.Bounds = &b
	}
	if c.mode == ModeDetail {
		snap.Monuments = len(c.points)
	} else {
		for _, a := range c.aggregates {
			snap.Monuments += a.Total
		}
	}
	return snap
}

// DefaultView - начальный центр и масштаб для страны
func (c *MapController) DefaultView(country string) domain.CountryView {
	for _, v := range c.tables.CountryViews {
		if v.Country == country {
			return v
		}
	}
	v := c.tables.DefaultView
	v.Country = country
	return v
}

// CapForZoom - лимит детальной выборки для масштаба
func (c *MapController) CapForZoom(zoom int) int {
	caps := c.tables.ZoomCaps
	for _, zc := range caps {
		if zoom >= zc.MinZoom {
			return zc.Limit
		}
	}
	return caps[len(caps)-1].Limit
}

// Wait дожидается завершения фоновых выборок
func (c *MapController) Wait() {
	c.wg.Wait()
}

func (c *MapController) requestDetail() {
	c.mu.Lock()
	if c.mode != ModeDetail || c.viewport == nil {
		c.mu.Unlock()
		return
	}
	if c.detailInFlight {
		c.mu.Unlock()
		c.logger.Debug("Detail fetch already in flight, dropping request")
		if c.metrics != nil {
			c.metrics.MapFetchDropped.Inc()
		}
		return
	}
	c.detailInFlight = true
	gen := c.generation
	vp := *c.viewport
	ctx := c.ctx
	c.mu.Unlock()

	query := repository.GeoJSONQuery{
		Criteria: c.filters.Criteria(),
		Bounds:   &vp.Bounds,
		Limit:    c.CapForZoom(vp.Zoom),
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.runDetail(ctx, gen, query)
	}()
}

func (c *MapController) runDetail(ctx context.Context, gen uint64, query repository.GeoJSONQuery) {
	c.logger.Debug("Fetching detail markers",
		zap.Uint64("generation", gen),
		zap.Int("limit", query.Limit),
		zap.Stringer("bounds", query.Bounds))

	fc, err := c.monumentRepo.GetGeoJSON(ctx, query)

	c.mu.Lock()
	c.detailInFlight = false
	stale := gen != c.generation
	retry := stale && c.mode == ModeDetail

	switch {
	case err != nil:
		c.logger.Warn("Detail fetch failed, keeping last markers", zap.Error(err))
		c.observe("detail", "error")
	case stale:
		c.logger.Debug("Discarding stale detail response", zap.Uint64("generation", gen))
		c.observe("detail", "stale")
		if c.metrics != nil {
			c.metrics.MapStaleResponse.Inc()
		}
	default:
		c.points = fc.MapPoints()
		c.observe("detail", "ok")
		c.publishLocked()
	}
	c.mu.Unlock()

	// запрос нового поколения мог быть отброшен, пока шла эта выборка
	if retry {
		c.requestDetail()
	}
}

func (c *MapController) fetchAggregates(gen uint64) {
	c.mu.Lock()
	c.aggregateFlight++
	ctx := c.ctx
	c.mu.Unlock()

	country := c.filters.Criteria().Country

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		fc, err := c.monumentRepo.GetRegionSummary(ctx, country)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.aggregateFlight--

		switch {
		case err != nil:
			c.logger.Warn("Aggregate fetch failed, keeping last markers",
				zap.String("pais", country),
				zap.Error(err))
			c.observe("aggregate", "error")
		case gen != c.generation:
			c.observe("aggregate", "stale")
			if c.metrics != nil {
				c.metrics.MapStaleResponse.Inc()
			}
		default:
			c.aggregates = fc.RegionAggregates()
			c.observe("aggregate", "ok")
			c.publishLocked()
		}
	}()
}

// publishLocked отдаёт видимый слой; вызывается под c.mu
func (c *MapController) publishLocked() {
	c.version++
	layers := MarkerLayers{Version: c.version}
	if c.mode == ModeDetail {
		layers.Points = c.points
		layers.Aggregates = []domain.RegionAggregate{}
	} else {
		layers.Points = []domain.MapPoint{}
		layers.Aggregates = c.aggregates
	}
	if layers.Points == nil {
		layers.Points = []domain.MapPoint{}
	}
	if layers.Aggregates == nil {
		layers.Aggregates = []domain.RegionAggregate{}
	}
	if c.sink != nil {
		c.sink.PublishMarkers(layers)
	}
}

func (c *MapController) observe(kind, outcome string) {
	if c.metrics != nil {
		c.metrics.MapFetches.WithLabelValues(kind, outcome).Inc()
	}
}
