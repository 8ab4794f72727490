package handler

import (
	"bufio"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/heritage-explorer/internal/bridge"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/utils"
	"go.uber.org/zap"
)

// keepAliveInterval - комментарий-пинг, чтобы WebView не закрывал простаивающий поток
const keepAliveInterval = 15 * time.Second

// BridgeHandler - транспорт моста: SSE к поверхности и POST от неё
type BridgeHandler struct {
	host   BridgeHost
	logger *zap.Logger
}

// NewBridgeHandler создает новый BridgeHandler
func NewBridgeHandler(host BridgeHost, logger *zap.Logger) *BridgeHandler {
	return &BridgeHandler{
		host:   host,
		logger: logger,
	}
}

// Events godoc
// @Summary Поток сообщений для поверхности карты
// @Description Server-Sent Events: setMarkers и navigate. Новый подписчик сразу получает последний setMarkers.
// @Tags Bridge
// @Produce text/event-stream
// @Success 200 {string} string "event stream"
// @Failure 503 {object} utils.ErrorResponse
// @Router /bridge/events [get]
func (h *BridgeHandler) Events(c *fiber.Ctx) error {
	sub, err := h.host.Subscribe()
	if err != nil {
		return utils.SendError(c, apperrors.ErrBridgeUnavailable)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer h.host.Unsubscribe(sub.ID)

		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		fmt.Fprintf(w, ": connected %s\n\n", sub.ID)
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case frame, ok := <-sub.Frames():
				if !ok {
					return
				}
				fmt.Fprintf(w, "data: %s\n\n", frame)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				h.logger.Debug("Bridge stream closed by client", zap.String("subscriber", sub.ID))
				return
			}
		}
	})
	return nil
}

// Messages godoc
// @Summary Сообщение от поверхности карты
// @Description Принимает markerPress и regionChange. Сообщение ставится в очередь; невалидные отбрасываются диспетчером.
// @Tags Bridge
// @Accept json
// @Param message body object true "markerPress{id} или regionChange{lat,lng,zoom,bounds}"
// @Success 202
// @Failure 503 {object} utils.ErrorResponse
// @Router /bridge/messages [post]
func (h *BridgeHandler) Messages(c *fiber.Ctx) error {
	if err := h.host.Receive(c.Body()); err != nil {
		if errors.Is(err, bridge.ErrQueueFull) {
			return utils.SendError(c, apperrors.ErrBridgeUnavailable.WithMessage("Map bridge queue is full"))
		}
		return utils.SendError(c, apperrors.ErrBridgeUnavailable)
	}
	return c.SendStatus(fiber.StatusAccepted)
}
