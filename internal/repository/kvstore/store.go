package kvstore

import (
	"fmt"

	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/domain/repository"
	"github.com/heritage-explorer/internal/repository/cache"
	"go.uber.org/zap"
)

// Open выбирает реализацию по cfg.Driver. Для драйвера redis нужен подключённый клиент.
func Open(cfg *config.StorageConfig, r *cache.Redis, logger *zap.Logger) (repository.KeyValueStore, error) {
	switch cfg.Driver {
	case "sqlite3", "pgx", "postgres":
		return NewSQLStore(cfg, logger)
	case "redis":
		if r == nil {
			return nil, fmt.Errorf("storage driver redis requires REDIS_ENABLED=true")
		}
		return NewRedisStore(r, logger), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
