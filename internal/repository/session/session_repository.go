package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	"go.uber.org/zap"
)

// Ключи хранилища устройства. Записываются и удаляются только вместе.
const (
	TokenKey = "auth_token"
	UserKey  = "auth_user"
)

// ErrNoSession - профиль нельзя сохранить, пока нет токена
var ErrNoSession = errors.New("session: no stored token")

type sessionRepository struct {
	store  repository.KeyValueStore
	logger *zap.Logger
}

func NewSessionRepository(store repository.KeyValueStore, logger *zap.Logger) repository.SessionRepository {
	return &sessionRepository{
		store:  store,
		logger: logger,
	}
}

func (r *sessionRepository) Load(ctx context.Context) (*domain.Session, error) {
	values, err := r.store.MultiGet(ctx, TokenKey, UserKey)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	token, rawUser := values[TokenKey], values[UserKey]
	if token == "" || rawUser == "" {
		if token != "" || rawUser != "" {
			r.logger.Warn("Partial session found in store, ignoring")
		}
		return nil, nil
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		r.logger.Warn("Stored user is not valid JSON, ignoring session", zap.Error(err))
		return nil, nil
	}

	return &domain.Session{Token: token, User: user}, nil
}

func (r *sessionRepository) Save(ctx context.Context, s domain.Session) error {
	if s.Token == "" {
		return fmt.Errorf("save session: empty token")
	}

	data, err := json.Marshal(s.User)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	if err := r.store.MultiSet(ctx, map[string]string{
		TokenKey: s.Token,
		UserKey:  string(data),
	}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	r.logger.Debug("Session saved", zap.Int64("user_id", s.User.ID))
	return nil
}

// SaveUser перезаписывает профиль вместе с текущим токеном. Без токена
// возвращает ErrNoSession, чтобы в хранилище не остался профиль без токена.
func (r *sessionRepository) SaveUser(ctx context.Context, u domain.User) error {
	token, err := r.Token(ctx)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	if token == "" {
		return ErrNoSession
	}
	return r.Save(ctx, domain.Session{Token: token, User: u})
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.store.MultiRemove(ctx, TokenKey, UserKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	r.logger.Debug("Session cleared")
	return nil
}

func (r *sessionRepository) Token(ctx context.Context) (string, error) {
	values, err := r.store.MultiGet(ctx, TokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return values[TokenKey], nil
}
