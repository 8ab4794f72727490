package handler

import (
	"context"

	"github.com/heritage-explorer/internal/bridge"
	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/usecase"
	"github.com/heritage-explorer/internal/usecase/dto"
)

// Интерфейсы use case, которые используют хендлеры

type CatalogService interface {
	GetStatistics(ctx context.Context) (*domain.Statistics, error)
	Search(ctx context.Context, criteria domain.FilterCriteria) (*dto.MonumentListResponse, error)
	Featured(ctx context.Context) ([]dto.MonumentSummary, error)
	ListFavorites(ctx context.Context, page, limit int) (*dto.MonumentListResponse, error)
	GetMonument(ctx context.Context, id int64) (*dto.MonumentDetailResponse, error)
}

type SessionService interface {
	Login(ctx context.Context, creds domain.Credentials) (*domain.User, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
	LoginWithGoogle(ctx context.Context, data domain.GoogleAuth) (*domain.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error)
	ToggleFavorite(ctx context.Context, id int64) (bool, error)
	Current() usecase.SessionSnapshot
}

type FilterService interface {
	Criteria() domain.FilterCriteria
	ActiveCount() int
	VisibleOptions() domain.FilterOptions
	Apply(ctx context.Context, next domain.FilterCriteria) error
	Reset(ctx context.Context) error
	SearchMunicipalities(ctx context.Context, query string) ([]domain.FilterOption, error)
}

type SubmissionService interface {
	SubmitProposal(ctx context.Context, req dto.ProposalRequest) error
	MyProposals(ctx context.Context, page, limit int) (*domain.ProposalPage, error)
	SendContact(ctx context.Context, req dto.ContactRequest) error
}

type MapService interface {
	Snapshot() usecase.MapSnapshot
	Refresh()
}

type BridgeHost interface {
	Subscribe() (*bridge.Subscriber, error)
	Unsubscribe(id string)
	Receive(data []byte) error
}
