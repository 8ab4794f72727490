package repository

import (
	"context"

	"github.com/heritage-explorer/internal/domain"
)

// AuthRepository - операции /auth/*
type AuthRepository interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.AuthResponse, error)
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResponse, error)
	LoginWithGoogle(ctx context.Context, data domain.GoogleAuth) (*domain.AuthResponse, error)
	Me(ctx context.Context) (*domain.User, error)
	UpdateMe(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error)
}

// FavoriteRepository - операции /favoritos/*
type FavoriteRepository interface {
	ListFavorites(ctx context.Context, page, limit int) (*domain.MonumentPage, error)
	FavoriteIDs(ctx context.Context) ([]int64, error)
	AddFavorite(ctx context.Context, id int64) error
	RemoveFavorite(ctx context.Context, id int64) error
}

// SubmissionRepository - multipart-отправки пользователя
type SubmissionRepository interface {
	SubmitProposal(ctx context.Context, p domain.Proposal) error
	MyProposals(ctx context.Context, page, limit int) (*domain.ProposalPage, error)
	SendContact(ctx context.Context, msg domain.ContactMessage) error
}
