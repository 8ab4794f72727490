package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/heritage-explorer/internal/domain"
	"github.com/heritage-explorer/internal/domain/repository"
	apperrors "github.com/heritage-explorer/internal/pkg/errors"
	"github.com/heritage-explorer/internal/pkg/metrics"
	"github.com/heritage-explorer/internal/pkg/token"
	"go.uber.org/zap"
)

// SessionSnapshot - то, что видят потребители сессии. User == nil означает анонимный режим.
type SessionSnapshot struct {
	User        *domain.User `json:"user"`
	FavoriteIDs []int64      `json:"favorite_ids"`
}

func (s SessionSnapshot) Authenticated() bool {
	return s.User != nil
}

// SessionListener вызывается после каждого изменения сессии или набора избранного
type SessionListener func(SessionSnapshot)

// SessionUseCase - единственный владелец сессии и набора избранного.
// Потребители читают состояние через Current/IsFavorite/Subscribe.
type SessionUseCase struct {
	sessions  repository.SessionRepository
	auth      repository.AuthRepository
	favorites repository.FavoriteRepository
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time

	mu        sync.RWMutex
	session   *domain.Session
	favSet    map[int64]struct{}
	listeners []SessionListener
}

// NewSessionUseCase создает новый экземпляр SessionUseCase. m может быть nil.
func NewSessionUseCase(
	sessions repository.SessionRepository,
	auth repository.AuthRepository,
	favorites repository.FavoriteRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) *SessionUseCase {
	return &SessionUseCase{
		sessions:  sessions,
		auth:      auth,
		favorites: favorites,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
		favSet:    make(map[int64]struct{}),
	}
}

// Restore поднимает сохранённую сессию при старте и перепроверяет токен через /auth/me.
// Истёкший JWT удаляется без обращения к сети. Сетевая ошибка оставляет
// закешированный профиль, отказ в авторизации уничтожает сессию.
func (uc *SessionUseCase) Restore(ctx context.Context) error {
	stored, err := uc.sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if stored == nil {
		uc.logger.Debug("No stored session, anonymous mode")
		return nil
	}

	if token.Expired(stored.Token, uc.now()) {
		uc.logger.Info("Stored token expired, destroying session")
		uc.destroy(ctx)
		return nil
	}

	uc.setSession(stored)

	user, err := uc.auth.Me(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			uc.logger.Info("Stored token rejected by backend")
			uc.destroy(ctx)
			return nil
		}
		uc.logger.Warn("Failed to revalidate session, keeping cached profile", zap.Error(err))
		uc.loadFavorites(ctx)
		uc.notify()
		return nil
	}

	if err := uc.sessions.SaveUser(ctx, *user); err != nil {
		uc.logger.Warn("Failed to persist refreshed profile", zap.Error(err))
	}

	uc.mu.Lock()
	if uc.session != nil {
		uc.session.User = *user
	}
	uc.mu.Unlock()

	uc.loadFavorites(ctx)
	uc.notify()
	return nil
}

func (uc *SessionUseCase) Login(ctx context.Context, creds domain.Credentials) (*domain.User, error) {
	resp, err := uc.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	return uc.establish(ctx, resp)
}

func (uc *SessionUseCase) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	resp, err := uc.auth.Register(ctx, reg)
	if err != nil {
		return nil, err
	}
	return uc.establish(ctx, resp)
}

func (uc *SessionUseCase) LoginWithGoogle(ctx context.Context, data domain.GoogleAuth) (*domain.User, error) {
	resp, err := uc.auth.LoginWithGoogle(ctx, data)
	if err != nil {
		return nil, err
	}
	return uc.establish(ctx, resp)
}

func (uc *SessionUseCase) establish(ctx context.Context, resp *domain.AuthResponse) (*domain.User, error) {
	if resp.Token == "" {
		return nil, apperrors.ErrServer.WithMessage("authentication response without token")
	}

	s := domain.Session{Token: resp.Token, User: resp.User}
	if err := uc.sessions.Save(ctx, s); err != nil {
		return nil, apperrors.ErrStorage.WithMessage(err.Error())
	}

	uc.setSession(&s)
	uc.loadFavorites(ctx)
	uc.notify()

	uc.logger.Info("Session established", zap.Int64("user_id", s.User.ID))
	user := s.User
	return &user, nil
}

// Logout удаляет токен и профиль вместе и очищает избранное
func (uc *SessionUseCase) Logout(ctx context.Context) error {
	err := uc.sessions.Clear(ctx)
	uc.clearMemory()
	uc.notify()
	if err != nil {
		uc.logger.Error("Failed to clear stored session", zap.Error(err))
		return apperrors.ErrStorage.WithMessage(err.Error())
	}
	uc.logger.Info("Logged out")
	return nil
}

// UpdateProfile сохраняет профиль на backend и обновляет кеш
func (uc *SessionUseCase) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (*domain.User, error) {
	if !uc.Current().Authenticated() {
		return nil, apperrors.ErrUnauthorized
	}

	user, err := uc.auth.UpdateMe(ctx, upd)
	if err != nil {
		return nil, err
	}

	if err := uc.sessions.SaveUser(ctx, *user); err != nil {
		uc.logger.Warn("Failed to persist updated profile", zap.Error(err))
	}

	uc.mu.Lock()
	if uc.session != nil {
		uc.session.User = *user
	}
	uc.mu.Unlock()
	uc.notify()
	return user, nil
}

// ToggleFavorite сначала меняет локальный набор, затем backend.
// При ошибке применяется точная обратная операция. Возвращает итоговое состояние.
func (uc *SessionUseCase) ToggleFavorite(ctx context.Context, id int64) (bool, error) {
	uc.mu.Lock()
	if uc.session == nil {
		uc.mu.Unlock()
		return false, apperrors.ErrUnauthorized
	}
	owner := uc.session
	_, was := uc.favSet[id]
	if was {
		delete(uc.favSet, id)
	} else {
		uc.favSet[id] = struct{}{}
	}
	uc.mu.Unlock()
	uc.notify()

	var err error
	if was {
		err = uc.favorites.RemoveFavorite(ctx, id)
	} else {
		err = uc.favorites.AddFavorite(ctx, id)
	}
	if err == nil {
		return !was, nil
	}

	uc.logger.Warn("Favorite toggle failed, reverting",
		zap.Int64("monument_id", id),
		zap.Bool("was_favorite", was),
		zap.Error(err))

	uc.mu.Lock()
	// после 401 сессия уже уничтожена, восстанавливать нечего
	if uc.session == owner {
		if was {
			uc.favSet[id] = struct{}{}
		} else {
			delete(uc.favSet, id)
		}
	}
	uc.mu.Unlock()
	if uc.metrics != nil {
		uc.metrics.FavoriteReverts.Inc()
	}
	uc.notify()

	return was, err
}

// HandleUnauthorized вызывается клиентом backend на любой 401
func (uc *SessionUseCase) HandleUnauthorized(ctx context.Context) {
	uc.logger.Info("Unauthorized response, destroying session")
	uc.destroy(ctx)
}

func (uc *SessionUseCase) Current() SessionSnapshot {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.snapshotLocked()
}

func (uc *SessionUseCase) IsFavorite(id int64) bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	_, ok := uc.favSet[id]
	return ok
}

func (uc *SessionUseCase) FavoriteIDs() []int64 {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.favoriteIDsLocked()
}

// Subscribe регистрирует слушателя; возвращает функцию отписки
func (uc *SessionUseCase) Subscribe(l SessionListener) func() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.listeners = append(uc.listeners, l)
	idx := len(uc.listeners) - 1
	return func() {
		uc.mu.Lock()
		defer uc.mu.Unlock()
		if idx < len(uc.listeners) {
			uc.listeners[idx] = nil
		}
	}
}

func (uc *SessionUseCase) destroy(ctx context.Context) {
	if err := uc.sessions.Clear(ctx); err != nil {
		uc.logger.Error("Failed to clear stored session", zap.Error(err))
	}
	uc.clearMemory()
	uc.notify()
}

func (uc *SessionUseCase) setSession(s *domain.Session) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	cp := *s
	uc.session = &cp
}

func (uc *SessionUseCase) clearMemory() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.session = nil
	uc.favSet = make(map[int64]struct{})
}

func (uc *SessionUseCase) loadFavorites(ctx context.Context) {
	ids, err := uc.favorites.FavoriteIDs(ctx)
	if err != nil {
		uc.logger.Warn("Failed to load favorite ids", zap.Error(err))
		return
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.session == nil {
		return
	}
	uc.favSet = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		uc.favSet[id] = struct{}{}
	}
}

func (uc *SessionUseCase) notify() {
	uc.mu.RLock()
	snap := uc.snapshotLocked()
	listeners := make([]SessionListener, len(uc.listeners))
	copy(listeners, uc.listeners)
	uc.mu.RUnlock()

	for _, l := range listeners {
		if l != nil {
			l(snap)
		}
	}
}

func (uc *SessionUseCase) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{FavoriteIDs: uc.favoriteIDsLocked()}
	if uc.session != nil {
		u := uc.session.User
		snap.User = &u
	}
	return snap
}

func (uc *SessionUseCase) favoriteIDsLocked() []int64 {
	ids := make([]int64, 0, len(uc.favSet))
	for id := range uc.favSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
