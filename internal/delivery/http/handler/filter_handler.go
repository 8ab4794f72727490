package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/heritage-explorer/internal/pkg/utils"
	"github.com/heritage-explorer/internal/usecase/dto"
	"go.uber.org/zap"
)

// FilterHandler - состояние фильтров, общее для списка и карты
type FilterHandler struct {
	filters FilterService
	logger  *zap.Logger
}

// NewFilterHandler создает новый экземпляр FilterHandler
func NewFilterHandler(filters FilterService, logger *zap.Logger) *FilterHandler {
	return &FilterHandler{
		filters: filters,
		logger:  logger,
	}
}

// Get godoc
// @Summary Текущие фильтры
// @Description Критерии, видимые списки каскада и количество активных фильтров
// @Tags Filters
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.FiltersResponse}
// @Router /api/v1/filters [get]
func (h *FilterHandler) Get(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.state(), nil)
}

// Update godoc
// @Summary Заменить фильтры
// @Description Смена страны, региона или провинции очищает зависимые поля и перезагружает списки один раз
// @Tags Filters
// @Accept json
// @Produce json
// @Param request body dto.FilterUpdateRequest true "Новые критерии"
// @Success 200 {object} utils.SuccessResponse{data=dto.FiltersResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/filters [put]
func (h *FilterHandler) Update(c *fiber.Ctx) error {
	var req dto.FilterUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.filters.Apply(c.Context(), req.Criteria()); err != nil {
		// критерии уже применены; не загрузились только списки
		h.logger.Warn("Filter options reload failed", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.state(), nil)
}

// Reset godoc
// @Summary Сбросить фильтры
// @Tags Filters
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.FiltersResponse}
// @Router /api/v1/filters/reset [post]
func (h *FilterHandler) Reset(c *fiber.Ctx) error {
	if err := h.filters.Reset(c.Context()); err != nil {
		h.logger.Warn("Filter options reload failed", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.state(), nil)
}

// Municipalities godoc
// @Summary Поиск муниципалитетов в текущем каскаде
// @Tags Filters
// @Produce json
// @Param q query string false "Начало названия"
// @Success 200 {object} utils.SuccessResponse{data=[]domain.FilterOption}
// @Router /api/v1/filters/municipios [get]
func (h *FilterHandler) Municipalities(c *fiber.Ctx) error {
	result, err := h.filters.SearchMunicipalities(c.Context(), c.Query("q"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

func (h *FilterHandler) state() dto.FiltersResponse {
	return dto.FiltersResponse{
		Criteria:    h.filters.Criteria(),
		Options:     h.filters.VisibleOptions(),
		ActiveCount: h.filters.ActiveCount(),
	}
}
