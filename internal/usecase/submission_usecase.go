package usecase

import (
	"context"
	"strings"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/validator"
	"github.com/heritage-explorer/internal/usecase/dto"
	"go.uber.org/zap"
)

// SubmissionUseCase проверяет формы до отправки: невалидная форма в сеть не уходит
type SubmissionUseCase struct {
	submissionRepo repository.SubmissionRepository
	logger         *zap.Logger
}

// NewSubmissionUseCase создает новый экземпляр SubmissionUseCase
func NewSubmissionUseCase(submissionRepo repository.SubmissionRepository, logger *zap.Logger) *SubmissionUseCase {
	return &SubmissionUseCase{
		submissionRepo: submissionRepo,
		logger:         logger,
	}
}

// SubmitProposal отправляет предложение нового объекта
func (uc *SubmissionUseCase) SubmitProposal(ctx context.Context, req dto.ProposalRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Country = strings.TrimSpace(req.Country)

	if err := validator.Check(req); err != nil {
		return err
	}
	if len(req.Images) > dto.MaxProposalImages {
		return apperrors.ErrTooManyAttachments.WithDetails(map[string]interface{}{
			"max": dto.MaxProposalImages,
		})
	}

	err := uc.submissionRepo.SubmitProposal(ctx, domain.Proposal{
		Fields: req.Fields(),
		Images: req.Images,
	})
	if err != nil {
		uc.logger.Warn("Failed to submit proposal", zap.String("denominacion", req.Name), zap.Error(err))
		return err
	}

	uc.logger.Info("Proposal submitted",
		zap.String("denominacion", req.Name),
		zap.Int("images", len(req.Images)))
	return nil
}

// MyProposals возвращает предложения текущего пользователя
func (uc *SubmissionUseCase) MyProposals(ctx context.Context, page, limit int) (*domain.ProposalPage, error) {
	if page < 1 {
		page = 1
	}
	return uc.submissionRepo.MyProposals(ctx, page, limit)
}

// SendContact отправляет сообщение в поддержку
func (uc *SubmissionUseCase) SendContact(ctx context.Context, req dto.ContactRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := validator.Check(req); err != nil {
		return err
	}

	err := uc.submissionRepo.SendContact(ctx, domain.ContactMessage{
		Email:       req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
		Attachments: req.Attachments,
	})
	if err != nil {
		uc.logger.Warn("Failed to send contact message", zap.Error(err))
		return err
	}
	return nil
}
