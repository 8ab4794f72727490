package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/heritage-explorer/internal/domain"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/utils"
	"github.com/heritage-explorer/internal/pkg/validator"
	"github.com/heritage-explorer/internal/usecase/dto"
	"go.uber.org/zap"
)

// SessionHandler - вход, выход, профиль и переключение избранного
type SessionHandler struct {
	sessions SessionService
	logger   *zap.Logger
}

// NewSessionHandler создает новый экземпляр SessionHandler
func NewSessionHandler(sessions SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// Current godoc
// @Summary Текущая сессия
// @Tags Session
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Router /api/v1/session [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	return utils.SendSuccess(c, h.snapshot(), nil)
}

// Login godoc
// @Summary Вход по email и паролю
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учётные данные"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/session/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	if _, err := h.sessions.Login(c.Context(), domain.Credentials{Email: req.Email, Password: req.Password}); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.snapshot(), nil)
}

// Register godoc
// @Summary Регистрация
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные пользователя"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/session/register [post]
func (h *SessionHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	_, err := h.sessions.Register(c.Context(), domain.Registration{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Language: req.Language,
	})
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.snapshot(), nil)
}

// LoginWithGoogle godoc
// @Summary Вход через Google
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.GoogleLoginRequest true "id_token или access_token"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/session/google [post]
func (h *SessionHandler) LoginWithGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	_, err := h.sessions.LoginWithGoogle(c.Context(), domain.GoogleAuth{
		IDToken:     req.IDToken,
		AccessToken: req.AccessToken,
	})
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.snapshot(), nil)
}

// Logout godoc
// @Summary Выход
// @Tags Session
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/session/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	if err := h.sessions.Logout(c.Context()); err != nil {
		h.logger.Error("Logout failed", zap.Error(err))
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, h.snapshot(), nil)
}

// UpdateProfile godoc
// @Summary Изменение профиля
// @Tags Session
// @Accept json
// @Produce json
// @Param request body dto.ProfileUpdateRequest true "Новые значения"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/session/profile [put]
func (h *SessionHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.sessions.UpdateProfile(c.Context(), domain.ProfileUpdate{
		Name:     req.Name,
		Language: req.Language,
		Password: req.Password,
	})
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// ToggleFavorite godoc
// @Summary Переключить избранное
// @Description Применяется локально сразу и откатывается, если backend отказал. Без сессии - 401.
// @Tags Favorites
// @Produce json
// @Param id path int true "ID объекта"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleFavoriteResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/favorites/{id}/toggle [post]
func (h *SessionHandler) ToggleFavorite(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendError(c, apperrors.ErrInvalidMonumentID)
	}

	favorite, err := h.sessions.ToggleFavorite(c.Context(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.ToggleFavoriteResponse{ID: int64(id), Favorite: favorite}, nil)
}

func (h *SessionHandler) snapshot() dto.SessionResponse {
	snap := h.sessions.Current()
	ids := snap.FavoriteIDs
	if ids == nil {
		ids = []int64{}
	}
	return dto.SessionResponse{
		Authenticated: snap.Authenticated(),
		User:          snap.User,
		FavoriteIDs:   ids,
	}
}

// parseBody разбирает JSON-тело и валидирует его
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.ErrInvalidRequest.WithMessage("Invalid request body")
	}
	return validator.Check(out)
}
