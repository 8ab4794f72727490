package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/heritage-explorer/internal/bridge"
	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/delivery/http/handler"
	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/usecase"
	"github.com/heritage-explorer/internal/usecase/dto"
)

type fixedBreaker string

func (b fixedBreaker) BreakerState() string { return string(b) }

type failingPinger struct{}

func (failingPinger) Health(context.Context) error { return errors.New("connection refused") }

func newMapApp(t *testing.T, mapSvc *MockMapService, catalog *MockCatalogService) *fiber.App {
	t.Helper()
	tables, err := config.LoadTables("")
	require.NoError(t, err)
	surface, err := bridge.NewSurface(domain.NewClassifier(tables.Categories), "es")
	require.NoError(t, err)

	h := handler.NewMapHandler(mapSvc, catalog, surface, zap.NewNop())
	health := handler.NewHealthHandler(fixedBreaker("closed"), nil)

	app := fiber.New()
	app.Get("/", h.Page)
	app.Get("/monumentos/:id/map", h.MonumentPage)
	app.Get("/api/v1/map/state", h.State)
	app.Post("/api/v1/map/refresh", h.Refresh)
	app.Get("/api/v1/health", health.Health)
	return app
}

func TestMapHandler_Page(t *testing.T) {
	mapSvc := &MockMapService{}
	mapSvc.On("Snapshot").Return(usecase.MapSnapshot{
		Mode:   usecase.ModeAggregate,
		Center: domain.CountryView{Country: "Francia", Lat: 46.6, Lng: 2.2, Zoom: 6},
	})
	app := newMapApp(t, mapSvc, &MockCatalogService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "46.6")
	assert.Contains(t, string(body), "EventSource")
}

func TestMapHandler_MonumentPage(t *testing.T) {
	catalog := &MockCatalogService{}
	app := newMapApp(t, &MockMapService{}, catalog)

	lat, lng := 40.95, -4.12
	catalog.On("GetMonument", mock.Anything, int64(10)).Return(&dto.MonumentDetailResponse{
		Monument: &domain.Monument{ID: 10, Name: "Acueducto", Latitude: &lat, Longitude: &lng},
	}, nil).Once()
	catalog.On("GetMonument", mock.Anything, int64(11)).Return(&dto.MonumentDetailResponse{
		Monument: &domain.Monument{ID: 11, Name: "Sin coordenadas"},
	}, nil).Once()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/monumentos/10/map", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Acueducto")
	assert.NotContains(t, string(body), `class="legend"`)

	resp, env := do(t, app, httptest.NewRequest(http.MethodGet, "/monumentos/11/map", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestMapHandler_StateAndRefresh(t *testing.T) {
	mapSvc := &MockMapService{}
	mapSvc.On("Snapshot").Return(usecase.MapSnapshot{Mode: usecase.ModeDetail, Zoom: 9, Points: 120, Loading: true})
	mapSvc.On("Refresh").Once()
	app := newMapApp(t, mapSvc, &MockCatalogService{})

	resp, env := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/map/state", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), `"mode":"DETAIL"`)
	assert.Contains(t, string(env.Data), `"loading":true`)

	resp, _ = do(t, app, httptest.NewRequest(http.MethodPost, "/api/v1/map/refresh", nil))
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	mapSvc.AssertExpectations(t)
}

func TestHealthHandler(t *testing.T) {
	app := newMapApp(t, &MockMapService{}, &MockCatalogService{})

	resp, env := do(t, app, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"healthy","backend":"closed","cache":"disabled"}`, string(env.Data))

	app = fiber.New()
	app.Get("/health", handler.NewHealthHandler(fixedBreaker("open"), failingPinger{}).Health)
	_, env = do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"healthy","backend":"open","cache":"unavailable"}`, string(env.Data))
}
