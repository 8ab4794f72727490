package heritageapi

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heritage-explorer/internal/config"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/metrics"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// TokenStore - источник bearer-токена; Clear вызывается при любом 401
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// UnauthorizedHandler уведомляется после очистки сохранённых учётных данных
type UnauthorizedHandler func(ctx context.Context)

// Client - HTTP-клиент REST backend каталога наследия
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenStore
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics.Metrics
	logger     *zap.Logger

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

// NewClient создает новый клиент backend. metrics может быть nil.
func NewClient(cfg *config.APIConfig, tokens TokenStore, m *metrics.Metrics, logger *zap.Logger) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  tokens,
		metrics: m,
		logger:  logger,
	}

	bc := cfg.Breaker
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "heritage-api",
		MaxRequests: bc.MaxRequests,
		Interval:    bc.Interval,
		Timeout:     bc.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < bc.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= bc.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return c
}

// SetUnauthorizedHandler регистрирует обработчик 401
func (c *Client) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

// BreakerState - состояние circuit breaker: closed, half-open или open
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

type request struct {
	endpoint    string // метка для логов и метрик
	method      string
	path        string
	query       url.Values
	jsonBody    interface{}
	body        io.Reader
	contentType string
}

type rawResponse struct {
	status int
	body   []byte
}

// serverFailure - 5xx, считается отказом для circuit breaker
type serverFailure struct {
	resp *rawResponse
}

func (e *serverFailure) Error() string {
	return fmt.Sprintf("server returned status %d", e.resp.status)
}

func (c *Client) do(ctx context.Context, r request, out interface{}) error {
	start := time.Now()
	resp, err := c.execute(ctx, r)
	c.observe(r.endpoint, start, err)
	if err != nil {
		return err
	}

	if out == nil || len(resp.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		c.logger.Error("Failed to decode response",
			zap.String("endpoint", r.endpoint),
			zap.Error(err))
		return apperrors.ErrNetwork.WithMessage("malformed response from backend")
	}
	return nil
}

func (c *Client) execute(ctx context.Context, r request) (*rawResponse, error) {
	req, err := c.newRequest(ctx, r)
	if err != nil {
		c.logger.Error("Failed to create request", zap.String("endpoint", r.endpoint), zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug("Calling heritage API",
		zap.String("endpoint", r.endpoint),
		zap.String("method", r.method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get("X-Request-ID")))

	result, err := c.breaker.Execute(func() (interface{}, error) {
		httpResp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer httpResp.Body.Close()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, err
		}
		raw := &rawResponse{status: httpResp.StatusCode, body: body}
		if raw.status >= http.StatusInternalServerError {
			return nil, &serverFailure{resp: raw}
		}
		return raw, nil
	})

	if err != nil {
		var sf *serverFailure
		switch {
		case stderrors.As(err, &sf):
			return nil, c.statusError(ctx, r, sf.resp)
		case stderrors.Is(err, gobreaker.ErrOpenState), stderrors.Is(err, gobreaker.ErrTooManyRequests):
			c.logger.Warn("Circuit breaker rejected request", zap.String("endpoint", r.endpoint), zap.Error(err))
			return nil, apperrors.ErrNetwork.WithMessage("backend temporarily unavailable")
		default:
			c.logger.Error("Failed to execute request", zap.String("endpoint", r.endpoint), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", err.Error(), apperrors.ErrNetwork)
		}
	}

	raw := result.(*rawResponse)
	if raw.status < 200 || raw.status >= 300 {
		return nil, c.statusError(ctx, r, raw)
	}
	return raw, nil
}

func (c *Client) newRequest(ctx context.Context, r request) (*http.Request, error) {
	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	body := r.body
	contentType := r.contentType
	if r.jsonBody != nil {
		data, err := json.Marshal(r.jsonBody)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			c.logger.Warn("Failed to read stored token", zap.Error(err))
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

// statusError переводит код ответа в ошибку приложения. При 401 локальные
// учётные данные удаляются до возврата ошибки.
func (c *Client) statusError(ctx context.Context, r request, resp *rawResponse) error {
	msg := serverMessage(resp.body)

	c.logger.Warn("Heritage API returned error",
		zap.String("endpoint", r.endpoint),
		zap.Int("status_code", resp.status),
		zap.String("message", msg))

	switch {
	case resp.status == http.StatusUnauthorized:
		c.handleUnauthorized(ctx)
		if msg != "" {
			return apperrors.ErrUnauthorized.WithMessage(msg)
		}
		return apperrors.ErrUnauthorized
	case resp.status == http.StatusNotFound:
		if msg != "" {
			return apperrors.ErrNotFound.WithMessage(msg)
		}
		return apperrors.ErrNotFound
	}

	if msg == "" {
		msg = apperrors.ErrServer.Message
	}
	e := apperrors.ErrServer.WithMessage(msg)
	if resp.status >= 400 && resp.status < 500 {
		e.StatusCode = resp.status
	}
	return e
}

func (c *Client) handleUnauthorized(ctx context.Context) {
	if c.tokens != nil {
		if err := c.tokens.Clear(ctx); err != nil {
			c.logger.Error("Failed to clear stored credentials", zap.Error(err))
		}
	}

	c.mu.RLock()
	h := c.onUnauthorized
	c.mu.RUnlock()
	if h != nil {
		h(ctx)
	}
}

func (c *Client) observe(endpoint string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = outcomeLabel(err)
	}
	c.metrics.APIRequests.WithLabelValues(endpoint, outcome).Inc()
	c.metrics.APIDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

func outcomeLabel(err error) string {
	switch {
	case stderrors.Is(err, apperrors.ErrUnauthorized):
		return "unauthorized"
	case stderrors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	case stderrors.Is(err, apperrors.ErrServer):
		return "server_error"
	default:
		return "network_error"
	}
}

// serverMessage извлекает текст ошибки из {"error": "..."} или {"message": "..."}
func serverMessage(body []byte) string {
	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Error) > 0 {
		var s string
		if err := json.Unmarshal(payload.Error, &s); err == nil && s != "" {
			return s
		}
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(payload.Error, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
	}
	return payload.Message
}
