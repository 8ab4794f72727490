package handler

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/heritage-explorer/internal/domain"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/utils"
	"github.com/heritage-explorer/internal/usecase/dto"
	"go.uber.org/zap"
)

// SubmissionHandler - предложения новых объектов и сообщения в поддержку
type SubmissionHandler struct {
	submissions SubmissionService
	logger      *zap.Logger
}

// NewSubmissionHandler создает новый экземпляр SubmissionHandler
func NewSubmissionHandler(submissions SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissions: submissions,
		logger:      logger,
	}
}

// Propose godoc
// @Summary Предложить объект
// @Description multipart/form-data: denominacion и pais обязательны, до 5 файлов в поле imagenes
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Param denominacion formData string true "Название"
// @Param pais formData string true "Страна"
// @Param imagenes formData file false "Изображения (до 5)"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/proposals [post]
func (h *SubmissionHandler) Propose(c *fiber.Ctx) error {
	var req dto.ProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("Invalid form"))
	}

	images, closeAll, err := attachments(c, "imagenes")
	if err != nil {
		return utils.SendError(c, err)
	}
	defer closeAll()
	req.Images = images

	if err := h.submissions.SubmitProposal(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: fiber.Map{"status": "pendiente"}})
}

// MyProposals godoc
// @Summary Мои предложения
// @Tags Submissions
// @Produce json
// @Param page query int false "Страница" default(1)
// @Param limit query int false "Размер страницы" default(20)
// @Success 200 {object} utils.SuccessResponse{data=domain.ProposalPage}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/proposals/mine [get]
func (h *SubmissionHandler) MyProposals(c *fiber.Ctx) error {
	page, err := h.submissions.MyProposals(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, page, &utils.Meta{
		Total:      page.Total,
		Page:       page.Page,
		TotalPages: page.Pages,
	})
}

// Contact godoc
// @Summary Сообщение в поддержку
// @Description multipart/form-data: email, asunto, mensaje обязательны, файлы в поле archivos
// @Tags Submissions
// @Accept multipart/form-data
// @Produce json
// @Param email formData string true "Email"
// @Param asunto formData string true "Тема"
// @Param mensaje formData string true "Сообщение"
// @Param archivos formData file false "Вложения"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/contact [post]
func (h *SubmissionHandler) Contact(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest.WithMessage("Invalid form"))
	}

	files, closeAll, err := attachments(c, "archivos")
	if err != nil {
		return utils.SendError(c, err)
	}
	defer closeAll()
	req.Attachments = files

	if err := h.submissions.SendContact(c.Context(), req); err != nil {
		return utils.SendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{Data: fiber.Map{"status": "enviado"}})
}

// attachments открывает файлы поля формы; closeAll нужно вызвать после отправки
func attachments(c *fiber.Ctx, field string) ([]domain.Attachment, func(), error) {
	noop := func() {}

	form, err := c.MultipartForm()
	if err != nil {
		// форма без файлов может прийти как urlencoded
		return nil, noop, nil
	}

	headers := form.File[field]
	out := make([]domain.Attachment, 0, len(headers))
	opened := make([]io.Closer, 0, len(headers))
	closeAll := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			closeAll()
			return nil, noop, apperrors.ErrInvalidRequest.WithMessage("Cannot read attachment " + fh.Filename)
		}
		opened = append(opened, f)
		out = append(out, domain.Attachment{
			Name:        fh.Filename,
			ContentType: contentType(fh),
			Content:     f,
		})
	}
	return out, closeAll, nil
}

func contentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get(fiber.HeaderContentType); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
