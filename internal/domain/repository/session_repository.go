package repository

import (
	"context"

	"github.com/heritage-explorer/internal/domain"
)

// KeyValueStore - постоянное хранилище устройства. Мульти-операции атомарны.
type KeyValueStore interface {
	MultiGet(ctx context.Context, keys ...string) (map[string]string, error)
	MultiSet(ctx context.Context, values map[string]string) error
	MultiRemove(ctx context.Context, keys ...string) error
	Close() error
}

// SessionRepository хранит токен и профиль вместе
type SessionRepository interface {
	// Load возвращает nil без ошибки, если сессии нет или она записана не полностью
	Load(ctx context.Context) (*domain.Session, error)

	Save(ctx context.Context, s domain.Session) error

	// SaveUser обновляет только закешированный профиль существующей сессии
	SaveUser(ctx context.Context, u domain.User) error

	Clear(ctx context.Context) error

	// Token возвращает сохранённый токен или пустую строку
	Token(ctx context.Context) (string, error)
}
