package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
)

// MockMonumentRepository is a mock of MonumentRepository
type MockMonumentRepository struct {
	mock.Mock
}

func (m *MockMonumentRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockMonumentRepository) ListMonuments(ctx context.Context, criteria domain.FilterCriteria) (*domain.MonumentPage, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonumentPage), args.Error(1)
}

func (m *MockMonumentRepository) GetMonument(ctx context.Context, id int64) (*domain.Monument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Monument), args.Error(1)
}

func (m *MockMonumentRepository) GetGeoJSON(ctx context.Context, q repository.GeoJSONQuery) (*domain.FeatureCollection, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeatureCollection), args.Error(1)
}

func (m *MockMonumentRepository) GetRegionSummary(ctx context.Context, country string) (*domain.FeatureCollection, error) {
	args := m.Called(ctx, country)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeatureCollection), args.Error(1)
}

func (m *MockMonumentRepository) GetFilterOptions(ctx context.Context, scope domain.CascadeScope) (*domain.FilterOptions, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

func (m *MockMonumentRepository) GetMunicipalities(ctx context.Context, scope domain.CascadeScope, query string) ([]domain.FilterOption, error) {
	args := m.Called(ctx, scope, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FilterOption), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStats(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCacheRepository) SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error {
	args := m.Called(ctx, stats, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetFilterOptions(ctx context.Context, scope domain.CascadeScope) (*domain.FilterOptions, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FilterOptions), args.Error(1)
}

func (m *MockCacheRepository) SetFilterOptions(ctx context.Context, scope domain.CascadeScope, opts *domain.FilterOptions, ttl time.Duration) error {
	args := m.Called(ctx, scope, opts, ttl)
	return args.Error(0)
}

// MockSessionRepository is a mock of SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, s domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionRepository) SaveUser(ctx context.Context, u domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockSessionRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionRepository) Token(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockAuthRepository is a mock of AuthRepository
type MockAuthRepository struct {
	mock.Mock
}

func (m *MockAuthRepository) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResponse, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResponse), args.Error(1)
}

func (m *MockAuthRepository) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResponse), args.Error(1)
}

func (m *MockAuthRepository) LoginWithGoogle(ctx context.Context, data domain.GoogleAuth) (*domain.AuthResponse, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResponse), args.Error(1)
}

func (m *MockAuthRepository) Me(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthRepository) UpdateMe(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockFavoriteRepository is a mock of FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) ListFavorites(ctx context.Context, page, limit int) (*domain.MonumentPage, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonumentPage), args.Error(1)
}

func (m *MockFavoriteRepository) FavoriteIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockFavoriteRepository) AddFavorite(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFavoriteRepository) RemoveFavorite(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSubmissionRepository is a mock of SubmissionRepository
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) SubmitProposal(ctx context.Context, p domain.Proposal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockSubmissionRepository) MyProposals(ctx context.Context, page, limit int) (*domain.ProposalPage, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProposalPage), args.Error(1)
}

func (m *MockSubmissionRepository) SendContact(ctx context.Context, msg domain.ContactMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}
