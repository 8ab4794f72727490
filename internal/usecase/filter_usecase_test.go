package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/usecase"
)

func TestFilterUseCase_CountryCascade(t *testing.T) {
	repo := &MockMonumentRepository{}
	ctx := context.Background()
	uc := usecase.NewFilterUseCase(repo, nil, time.Minute, zap.NewNop())

	italy := domain.CascadeScope{Country: "Italia"}
	portugal := domain.CascadeScope{Country: "Portugal"}
	repo.On("GetFilterOptions", ctx, italy).Return(&domain.FilterOptions{}, nil).Once()
	repo.On("GetFilterOptions", ctx, mock.MatchedBy(func(s domain.CascadeScope) bool {
		return s.Country == "Italia" && s.Region != ""
	})).Return(&domain.FilterOptions{}, nil)
	repo.On("GetFilterOptions", ctx, portugal).
		Return(&domain.FilterOptions{Regions: []domain.FilterOption{{Value: "Norte"}}}, nil).Once()

	require.NoError(t, uc.SetCountry(ctx, "Italia"))
	require.NoError(t, uc.SetRegion(ctx, "Toscana"))
	require.NoError(t, uc.SetProvince(ctx, "Firenze"))
	uc.SetMunicipality("Firenze")
	uc.SetCategory("Castillos")
	uc.SetType("Torre")
	uc.SetStyle("Gótico")
	uc.SetOnlyImage(true)

	var notified []domain.FilterCriteria
	uc.Subscribe(func(c domain.FilterCriteria) { notified = append(notified, c) })

	require.NoError(t, uc.SetCountry(ctx, "Portugal"))

	got := uc.Criteria()
	assert.Equal(t, "Portugal", got.Country)
	assert.Empty(t, got.Region)
	assert.Empty(t, got.Province)
	assert.Empty(t, got.Municipality)
	assert.Empty(t, got.Category)
	assert.Empty(t, got.Type)
	assert.Empty(t, got.Style)
	assert.True(t, got.OnlyImage, "boolean refinements survive cascade changes")

	repo.AssertNumberOfCalls(t, "GetFilterOptions", 4)
	repo.AssertCalled(t, "GetFilterOptions", ctx, portugal)
	assert.Equal(t, "Norte", uc.Options().Regions[0].Value)
	require.Len(t, notified, 1)
	assert.Equal(t, "Portugal", notified[0].Country)
}

func TestFilterUseCase_RegionAndProvinceCascade(t *testing.T) {
	repo := &MockMonumentRepository{}
	ctx := context.Background()
	uc := usecase.NewFilterUseCase(repo, nil, time.Minute, zap.NewNop())

	repo.On("GetFilterOptions", ctx, mock.Anything).Return(&domain.FilterOptions{}, nil)

	require.NoError(t, uc.SetCountry(ctx, "España"))
	require.NoError(t, uc.SetRegion(ctx, "Aragón"))
	require.NoError(t, uc.SetProvince(ctx, "Huesca"))
	uc.SetMunicipality("Loarre")
	uc.SetType("Castillo")

	require.NoError(t, uc.SetRegion(ctx, "Cataluña"))
	got := uc.Criteria()
	assert.Equal(t, "España", got.Country)
	assert.Equal(t, "Cataluña", got.Region)
	assert.Empty(t, got.Province)
	assert.Empty(t, got.Municipality)
	assert.Empty(t, got.Type)
	repo.AssertCalled(t, "GetFilterOptions", ctx, domain.CascadeScope{Country: "España", Region: "Cataluña"})

	require.NoError(t, uc.SetProvince(ctx, "Girona"))
	uc.SetMunicipality("Besalú")
	require.NoError(t, uc.SetProvince(ctx, "Lleida"))
	assert.Empty(t, uc.Criteria().Municipality)
	repo.AssertCalled(t, "GetFilterOptions", ctx, domain.CascadeScope{Country: "España", Region: "Cataluña", Province: "Lleida"})
}

func TestFilterUseCase_UnchangedValueDoesNotReload(t *testing.T) {
	repo := &MockMonumentRepository{}
	ctx := context.Background()
	uc := usecase.NewFilterUseCase(repo, nil, time.Minute, zap.NewNop())

	repo.On("GetFilterOptions", ctx, domain.CascadeScope{Country: "Francia"}).Return(&domain.FilterOptions{}, nil).Once()

	require.NoError(t, uc.SetCountry(ctx, "Francia"))
	require.NoError(t, uc.SetCountry(ctx, "Francia"))

	repo.AssertNumberOfCalls(t, "GetFilterOptions", 1)
}

func TestFilterUseCase_FailedReloadKeepsOptions(t *testing.T) {
	repo := &MockMonumentRepository{}
	ctx := context.Background()
	uc := usecase.NewFilterUseCase(repo, nil, time.Minute, zap.NewNop())

	previous := &domain.FilterOptions{Countries: []domain.FilterOption{{Value: "España"}, {Value: "Portugal"}}}
	repo.On("GetFilterOptions", ctx, domain.CascadeScope{}).Return(previous, nil).Once()
	repo.On("GetFilterOptions", ctx, domain.CascadeScope{Country: "España"}).Return(nil, errors.New("offline")).Once()

	require.NoError(t, uc.LoadOptions(ctx))
	err := uc.SetCountry(ctx, "España")
	assert.Error(t, err)

	assert.Equal(t, "España", uc.Criteria().Country)
	assert.Len(t, uc.Options().Countries, 2)
}

func TestFilterUseCase_UsesCache(t *testing.T) {
	repo := &MockMonumentRepository{}
	cache := &MockCacheRepository{}
	ctx := context.Background()
	uc := usecase.NewFilterUseCase(repo, cache, 10*time.Minute, zap.NewNop())

	scope := domain.CascadeScope{Country: "Portugal"}
	fresh := &domain.FilterOptions{Regions: []domain.FilterOption{{Value: "Alentejo"}}}

	cache.On("GetFilterOptions", ctx, scope).Return(nil, nil).Once()
	repo.On("GetFilterOptions", ctx, scope).Return(fresh, nil).Once()
	cache.On("SetFilterOptions", ctx, scope, fresh, 10*time.Minute).Return(nil).Once()

	require.NoError(t, uc.SetCountry(ctx, "Portugal"))
	assert.Equal(t, "Alentejo", uc.Options().Regions[0].Value)

	cache.On("GetFilterOptions", ctx, domain.CascadeScope{}).Return(&domain.FilterOptions{}, nil).Once()
	require.NoError(t, uc.Reset(ctx))

	cache.On("GetFilterOptions", ctx, scope).Return(fresh, nil).Once()

	require.NoError(t, uc.SetCountry(ctx, "Portugal"))

	repo.AssertNumberOfCalls(t, "GetFilterOptions", 1)
	cache.AssertExpectations(t)
}

func TestFilterUseCase_ResetAndActiveCount(t *testing.T) {
	repo := &MockMonumentRepository{}
	ctx := context.Background()
	uc := usecase.NewFilterUseCase(repo, nil, time.Minute, zap.NewNop())

	repo.On("GetFilterOptions", ctx, mock.Anything).Return(&domain.FilterOptions{}, nil)

	require.NoError(t, uc.SetCountry(ctx, "España"))
	uc.SetCategory("Arqueológico")
	uc.SetOnlyWikidata(true)
	uc.SetQuery("castillo")
	uc.SetPage(3)
	assert.Equal(t, 3, uc.ActiveCount())

	require.NoError(t, uc.Reset(ctx))
	assert.Equal(t, usecase.DefaultCriteria(), uc.Criteria())
	assert.Equal(t, 0, uc.ActiveCount())
	repo.AssertCalled(t, "GetFilterOptions", ctx, domain.CascadeScope{})
}

func TestFilterUseCase_SortAndPaging(t *testing.T) {
	uc := usecase.NewFilterUseCase(&MockMonumentRepository{}, nil, time.Minute, zap.NewNop())

	assert.Error(t, uc.SetSort("random"))
	require.NoError(t, uc.SetSort(domain.SortMunicipalityDesc))
	assert.Equal(t, domain.SortMunicipalityDesc, uc.Criteria().Sort)

	uc.SetPage(4)
	assert.Equal(t, 4, uc.Criteria().Page)
	uc.SetQuery("iglesia")
	assert.Equal(t, 1, uc.Criteria().Page, "changing the query restarts paging")

	uc.SetLimit(0)
	assert.Equal(t, domain.DefaultPageSize, uc.Criteria().Limit)
}

func TestFilterUseCase_ApplyReloadsOnceForDeepestLevel(t *testing.T) {
	repo := &MockMonumentRepository{}
	ctx := context.Background()
	uc := usecase.NewFilterUseCase(repo, nil, time.Minute, zap.NewNop())

	scope := domain.CascadeScope{Country: "España", Region: "Galicia", Province: "Lugo"}
	repo.On("GetFilterOptions", ctx, scope).Return(&domain.FilterOptions{}, nil).Once()

	err := uc.Apply(ctx, domain.FilterCriteria{Country: "España", Region: "Galicia", Province: "Lugo", Category: "Religioso"})
	require.NoError(t, err)

	got := uc.Criteria()
	assert.Equal(t, "Religioso", got.Category)
	assert.Equal(t, domain.DefaultSort, got.Sort)
	assert.Equal(t, domain.DefaultPageSize, got.Limit)
	repo.AssertNumberOfCalls(t, "GetFilterOptions", 1)

	require.NoError(t, uc.Apply(ctx, domain.FilterCriteria{Country: "España", Region: "Galicia", Province: "Lugo", Category: "Civil"}))
	repo.AssertNumberOfCalls(t, "GetFilterOptions", 1)
}
