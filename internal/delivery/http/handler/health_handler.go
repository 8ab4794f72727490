package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/heritage-explorer/internal/pkg/utils"
	"github.com/heritage-explorer/internal/usecase/dto"
)

const cacheHealthTimeout = time.Second

// BreakerStater - состояние circuit breaker клиента backend
type BreakerStater interface {
	BreakerState() string
}

// Pinger - необязательный кеш ответов
type Pinger interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	backend BreakerStater
	cache   Pinger
}

// NewHealthHandler создает HealthHandler. cache может быть nil, если Redis выключен.
func NewHealthHandler(backend BreakerStater, cache Pinger) *HealthHandler {
	return &HealthHandler{backend: backend, cache: cache}
}

// Health godoc
// @Summary Health check
// @Description Состояние локального сервера, circuit breaker удалённого backend и кеша
// @Tags Health
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.HealthResponse}
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return utils.SendSuccess(c, dto.HealthResponse{
		Status:  "healthy",
		Backend: h.backend.BreakerState(),
		Cache:   h.cacheState(c.UserContext()),
	}, nil)
}

func (h *HealthHandler) cacheState(ctx context.Context) string {
	if h.cache == nil {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, cacheHealthTimeout)
	defer cancel()
	if err := h.cache.Health(ctx); err != nil {
		return "unavailable"
	}
	return "ok"
}
