package heritageapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (m *memoryTokens) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memoryTokens) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.cleared++
	return nil
}

func testConfig(baseURL string) *config.APIConfig {
	return &config.APIConfig{
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
		Breaker: config.BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 1,
			MinRequests:      100,
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc, tokens *memoryTokens) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(testConfig(server.URL+"/api"), tokens, metrics.New(), zap.NewNop()), server
}

func TestClient_GetGeoJSON(t *testing.T) {
	tokens := &memoryTokens{token: "tok-123"}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/geojson", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		q := r.URL.Query()
		assert.Equal(t, "-1,41,1.5,43", q.Get("bbox"))
		assert.Equal(t, "5000", q.Get("limit"))
		assert.Equal(t, "España", q.Get("pais"))
		assert.False(t, q.Has("page"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type":"FeatureCollection","features":[
		  {"type":"Feature","geometry":{"type":"Point","coordinates":[-0.8,42.3]},"properties":{"id":7,"nombre":"Castillo de Loarre"}}
		]}`))
	}, tokens)

	fc, err := client.GetGeoJSON(context.Background(), repository.GeoJSONQuery{
		Criteria: domain.FilterCriteria{Country: "España", Page: 3},
		Bounds:   &domain.BoundingBox{MinLat: 41, MaxLat: 43, MinLon: -1, MaxLon: 1.5},
		Limit:    5000,
	})
	require.NoError(t, err)
	points := fc.MapPoints()
	require.Len(t, points, 1)
	assert.Equal(t, int64(7), points[0].ID)
}

func TestClient_AnonymousRequestHasNoAuthorization(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"total": 120000, "por_pais": [{"pais": "España", "total": 100000}]}`))
	}, &memoryTokens{})

	stats, err := client.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120000, stats.Total)
	assert.Equal(t, "España", stats.ByCountry[0].Country)
}

func TestClient_Unauthorized(t *testing.T) {
	tokens := &memoryTokens{token: "expired"}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token inválido"}`))
	}, tokens)

	var notified int32
	client.SetUnauthorizedHandler(func(ctx context.Context) {
		atomic.AddInt32(&notified, 1)
	})

	_, err := client.FavoriteIDs(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Token inválido")
	assert.Equal(t, 1, tokens.cleared)
	assert.Empty(t, tokens.token)
	assert.Equal(t, int32(1), atomic.LoadInt32(&notified))
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Run("domain error is surfaced verbatim", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"error":"El email ya está registrado"}`))
		}, &memoryTokens{})

		_, err := client.Register(context.Background(), domain.Registration{Email: "a@b.es", Password: "secret1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrServer)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "El email ya está registrado", appErr.Message)
		assert.Equal(t, http.StatusConflict, appErr.StatusCode)
	})

	t.Run("generic message without reason", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, &memoryTokens{})

		_, err := client.GetStats(context.Background())
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrServer.Message, appErr.Message)
	})

	t.Run("not found", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}, &memoryTokens{})

		_, err := client.GetMonument(context.Background(), 99)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("malformed response", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items": [`))
		}, &memoryTokens{})

		_, err := client.ListMonuments(context.Background(), domain.FilterCriteria{})
		assert.ErrorIs(t, err, apperrors.ErrNetwork)
	})

	t.Run("unreachable backend", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		client := NewClient(testConfig(url), &memoryTokens{}, nil, zap.NewNop())
		_, err := client.GetStats(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrNetwork)
	})
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Breaker.MinRequests = 2
	client := NewClient(cfg, &memoryTokens{}, nil, zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err := client.GetStats(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrServer)
	}

	_, err := client.GetStats(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrNetwork)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "open", client.BreakerState())
}

func TestClient_SubmitProposal(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/propuestas", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Torre de los Lujanes", r.FormValue("denominacion"))
		assert.Equal(t, "España", r.FormValue("pais"))
		_, hasEmpty := r.MultipartForm.Value["provincia"]
		assert.False(t, hasEmpty)

		files := r.MultipartForm.File["imagenes"]
		require.Len(t, files, 2)
		assert.Equal(t, "foto_0.jpg", files[0].Filename)
		f, err := files[1].Open()
		require.NoError(t, err)
		data, _ := io.ReadAll(f)
		assert.Equal(t, "png-bytes", string(data))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 1})
	}, &memoryTokens{token: "tok"})

	err := client.SubmitProposal(context.Background(), domain.Proposal{
		Fields: []domain.FormField{
			{Name: "denominacion", Value: "Torre de los Lujanes"},
			{Name: "pais", Value: "España"},
			{Name: "provincia", Value: ""},
		},
		Images: []domain.Attachment{
			{Name: "foto_0.jpg", ContentType: "image/jpeg", Content: strings.NewReader("jpeg-bytes")},
			{Name: "foto_1.png", ContentType: "image/png", Content: strings.NewReader("png-bytes")},
		},
	})
	require.NoError(t, err)
}

func TestClient_SendContact(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Error en ficha", r.FormValue("asunto"))
		assert.Len(t, r.MultipartForm.File["archivos"], 1)
		w.WriteHeader(http.StatusNoContent)
	}, &memoryTokens{})

	err := client.SendContact(context.Background(), domain.ContactMessage{
		Email:       "ana@example.es",
		Subject:     "Error en ficha",
		Message:     "La ficha 123 tiene coordenadas erróneas",
		Attachments: []domain.Attachment{{Name: "captura.png", Content: strings.NewReader("x")}},
	})
	require.NoError(t, err)
}
