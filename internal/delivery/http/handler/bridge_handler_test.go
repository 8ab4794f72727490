package handler_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/heritage-explorer/internal/bridge"
	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/delivery/http/handler"
	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/usecase"
)

func newBridgeHost(t *testing.T, queue int) *bridge.Host {
	t.Helper()
	tables, err := config.LoadTables("")
	require.NoError(t, err)
	builder := bridge.NewMarkerBuilder(domain.NewClassifier(tables.Categories), tables.Map)
	return bridge.NewHost(builder, queue, nil, zap.NewNop())
}

func newBridgeApp(host *bridge.Host) *fiber.App {
	h := handler.NewBridgeHandler(host, zap.NewNop())
	app := fiber.New()
	app.Get("/bridge/events", h.Events)
	app.Post("/bridge/messages", h.Messages)
	return app
}

func TestBridgeHandler_MessagesAreQueued(t *testing.T) {
	host := newBridgeHost(t, 1)
	app := newBridgeApp(host)

	resp, _ := do(t, app, jsonRequest(http.MethodPost, "/bridge/messages", `{"type":"markerPress","id":5}`))
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	resp, env := do(t, app, jsonRequest(http.MethodPost, "/bridge/messages", `{"type":"markerPress","id":6}`))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "BRIDGE_UNAVAILABLE", env.Error.Code)

	assert.Equal(t, `{"type":"markerPress","id":5}`, string(<-host.Inbound()))
}

func TestBridgeHandler_EventsReplayLatestMarkers(t *testing.T) {
	host := newBridgeHost(t, 1)
	app := newBridgeApp(host)

	host.PublishMarkers(usecase.MarkerLayers{
		Version:    1,
		Points:     []domain.MapPoint{},
		Aggregates: []domain.RegionAggregate{{Region: "Galicia", Lat: 42.8, Lng: -8, Total: 999}},
	})

	// поток завершается, когда хост отключает подписчиков
	go func() {
		time.Sleep(200 * time.Millisecond)
		host.Close()
	}()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bridge/events", nil), 3000)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	stream := string(body)
	assert.True(t, strings.HasPrefix(stream, ": connected "))
	assert.Contains(t, stream, `data: {"type":"setMarkers","markers":[],"ccaaMarkers":[{"region":"Galicia"`)
	assert.Contains(t, stream, `"label":"999"`)
}

func TestBridgeHandler_EventsAfterClose(t *testing.T) {
	host := newBridgeHost(t, 1)
	host.Close()
	app := newBridgeApp(host)

	resp, env := do(t, app, httptest.NewRequest(http.MethodGet, "/bridge/events", nil))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "BRIDGE_UNAVAILABLE", env.Error.Code)
}
