package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/usecase"
	"github.com/heritage-explorer/internal/usecase/dto"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCatalogService) Search(ctx context.Context, criteria domain.FilterCriteria) (*dto.MonumentListResponse, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MonumentListResponse), args.Error(1)
}

func (m *MockCatalogService) Featured(ctx context.Context) ([]dto.MonumentSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MonumentSummary), args.Error(1)
}

func (m *MockCatalogService) ListFavorites(ctx context.Context, page, limit int) (*dto.MonumentListResponse, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MonumentListResponse), args.Error(1)
}

func (m *MockCatalogService) GetMonument(ctx context.Context, id int64) (*dto.MonumentDetailResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MonumentDetailResponse), args.Error(1)
}

type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSessionService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSessionService) LoginWithGoogle(ctx context.Context, data domain.GoogleAuth) (*domain.User, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionService) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockSessionService) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionService) Current() usecase.SessionSnapshot {
	return m.Called().Get(0).(usecase.SessionSnapshot)
}

type MockFilterService struct {
	mock.Mock
}

func (m *MockFilterService) Criteria() domain.FilterCriteria {
	return m.Called().Get(0).(domain.FilterCriteria)
}

func (m *MockFilterService) ActiveCount() int {
	return m.Called().Int(0)
}

func (m *MockFilterService) VisibleOptions() domain.FilterOptions {
	return m.Called().Get(0).(domain.FilterOptions)
}

func (m *MockFilterService) Apply(ctx context.Context, next domain.FilterCriteria) error {
	return m.Called(ctx, next).Error(0)
}

func (m *MockFilterService) Reset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockFilterService) SearchMunicipalities(ctx context.Context, query string) ([]domain.FilterOption, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FilterOption), args.Error(1)
}

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) SubmitProposal(ctx context.Context, req dto.ProposalRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockSubmissionService) MyProposals(ctx context.Context, page, limit int) (*domain.ProposalPage, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProposalPage), args.Error(1)
}

func (m *MockSubmissionService) SendContact(ctx context.Context, req dto.ContactRequest) error {
	return m.Called(ctx, req).Error(0)
}

type MockMapService struct {
	mock.Mock
}

func (m *MockMapService) Snapshot() usecase.MapSnapshot {
	return m.Called().Get(0).(usecase.MapSnapshot)
}

func (m *MockMapService) Refresh() {
	m.Called()
}
