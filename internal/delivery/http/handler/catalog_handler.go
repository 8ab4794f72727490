package handler

import (
	"github.com/gofiber/fiber/v2"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/utils"
	"github.com/heritage-explorer/internal/pkg/validator"
	"github.com/heritage-explorer/internal/usecase/dto"
	"go.uber.org/zap"
)

// CatalogHandler - статистика, поиск, карточки и избранное
type CatalogHandler struct {
	catalog CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler создает новый экземпляр CatalogHandler
func NewCatalogHandler(catalog CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Сводная статистика
// @Description Итоги по каталогу для главного экрана (кэшируются)
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.Statistics}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/stats [get]
func (h *CatalogHandler) GetStatistics(c *fiber.Ctx) error {
	stats, err := h.catalog.GetStatistics(c.Context())
	if err != nil {
		h.logger.Error("Failed to get statistics", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stats, nil)
}

// Search godoc
// @Summary Поиск объектов наследия
// @Description Страница результатов по фильтрам; по умолчанию nombre_asc, 24 на страницу
// @Tags Catalog
// @Produce json
// @Param q query string false "Текст поиска"
// @Param pais query string false "Страна"
// @Param region query string false "Регион"
// @Param provincia query string false "Провинция"
// @Param municipio query string false "Муниципалитет"
// @Param categoria query string false "Категория"
// @Param tipo query string false "Тип"
// @Param estilo query string false "Стиль"
// @Param solo_wikidata query bool false "Только с Wikidata"
// @Param solo_imagen query bool false "Только с изображением"
// @Param sort query string false "nombre_asc, nombre_desc, municipio_asc, municipio_desc"
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы" default(24)
// @Success 200 {object} utils.SuccessResponse{data=dto.MonumentListResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/monumentos [get]
func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Check(req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.catalog.Search(c.Context(), req.Criteria())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:      result.Total,
		Page:       result.Page,
		TotalPages: result.TotalPages,
	})
}

// Featured godoc
// @Summary Избранные объекты главного экрана
// @Description Объекты с Wikidata и изображением
// @Tags Catalog
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.MonumentSummary}
// @Router /api/v1/featured [get]
func (h *CatalogHandler) Featured(c *fiber.Ctx) error {
	items, err := h.catalog.Featured(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, items, nil)
}

// GetMonument godoc
// @Summary Карточка объекта
// @Description Объект с галереей, цветом и иконкой категории, строкой местоположения и ссылками
// @Tags Catalog
// @Produce json
// @Param id path int true "ID объекта"
// @Success 200 {object} utils.SuccessResponse{data=dto.MonumentDetailResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/monumentos/{id} [get]
func (h *CatalogHandler) GetMonument(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, apperrors.ErrInvalidMonumentID)
	}

	detail, err := h.catalog.GetMonument(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, detail, nil)
}

// ListFavorites godoc
// @Summary Избранное пользователя
// @Tags Favorites
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы" default(24)
// @Success 200 {object} utils.SuccessResponse{data=dto.MonumentListResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/favorites [get]
func (h *CatalogHandler) ListFavorites(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 24)

	result, err := h.catalog.ListFavorites(c.Context(), page, limit)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{
		Total:      result.Total,
		Page:       result.Page,
		Limit:      limit,
		TotalPages: result.TotalPages,
	})
}
