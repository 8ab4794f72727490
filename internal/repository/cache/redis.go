package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/heritage-explorer/internal/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Таймауты короткие: кеш необязателен, и клиент не должен ждать его дольше backend
const (
	dialTimeout = 2 * time.Second
	ioTimeout   = time.Second
)

// Redis - общее подключение для кеша ответов и, при STORAGE_DRIVER=redis, хранилища сессии
type Redis struct {
	client *redis.Client
	addr   string
	logger *zap.Logger
}

// NewRedis подключается и проверяет соединение PING
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
	})

	r := &Redis{client: client, addr: addr, logger: logger}

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := r.Health(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	logger.Info("Redis connected", zap.String("addr", addr), zap.Int("db", cfg.DB))
	return r, nil
}

func (r *Redis) Close() error {
	r.logger.Debug("Closing Redis connection", zap.String("addr", r.addr))
	return r.client.Close()
}

// Health - PING; используется при подключении и в /api/v1/health
func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}
