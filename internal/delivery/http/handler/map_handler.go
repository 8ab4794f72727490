package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/heritage-explorer/internal/bridge"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/utils"
	"go.uber.org/zap"
)

// singleMarkerZoom - масштаб карты на карточке объекта
const singleMarkerZoom = 15

// MapHandler отдаёт страницы карты и состояние контроллера
type MapHandler struct {
	mapSvc  MapService
	catalog CatalogService
	surface *bridge.Surface
	logger  *zap.Logger
}

// NewMapHandler создает новый MapHandler
func NewMapHandler(mapSvc MapService, catalog CatalogService, surface *bridge.Surface, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		mapSvc:  mapSvc,
		catalog: catalog,
		surface: surface,
		logger:  logger,
	}
}

// Page - интерактивная карта с центром по выбранной стране
func (h *MapHandler) Page(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	if err := h.surface.RenderMap(c, h.mapSvc.Snapshot().Center); err != nil {
		h.logger.Error("Failed to render map page", zap.Error(err))
		return utils.SendError(c, apperrors.ErrInternalServer)
	}
	return nil
}

// MonumentPage - карта с одним маркером для карточки объекта
func (h *MapHandler) MonumentPage(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidMonumentID)
	}

	detail, err := h.catalog.GetMonument(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	pt, ok := detail.Monument.Coordinates()
	if !ok || !utils.ValidateCoordinates(pt.Lat, pt.Lng) {
		return utils.SendError(c, apperrors.ErrNotFound.WithMessage("Monument has no coordinates"))
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	err = h.surface.RenderSingle(c, bridge.SinglePoint{
		ID:    detail.Monument.ID,
		Lat:   pt.Lat,
		Lng:   pt.Lng,
		Title: detail.Monument.Name,
	}, singleMarkerZoom)
	if err != nil {
		h.logger.Error("Failed to render monument map", zap.Int("id", id), zap.Error(err))
		return utils.SendError(c, apperrors.ErrInternalServer)
	}
	return nil
}

// State godoc
// @Summary Состояние контроллера карты
// @Description Режим (AGGREGATE/DETAIL), масштаб, границы, флаг загрузки и количество маркеров
// @Tags Map
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=usecase.MapSnapshot}
// @Router /api/v1/map/state [get]
func (h *MapHandler) State(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.mapSvc.Snapshot(), nil)
}

// Refresh godoc
// @Summary Перезагрузить видимый слой
// @Tags Map
// @Success 202
// @Router /api/v1/map/refresh [post]
func (h *MapHandler) Refresh(c *fiber.Ctx) error {
	h.mapSvc.Refresh()
	return c.SendStatus(fiber.StatusAccepted)
}
