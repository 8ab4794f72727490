package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	API     APIConfig
	Storage StorageConfig
	Redis   RedisConfig
	Cache   CacheConfig
	Log     LogConfig
	Bridge  BridgeConfig
	Map     MapConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins string
}

// APIConfig - удалённый REST backend каталога
type APIConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	Breaker        BreakerConfig
}

type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// StorageConfig - локальное key-value хранилище сессии.
// Driver: sqlite3, pgx, postgres или redis.
type StorageConfig struct {
	Driver string
	DSN    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	StatsTTL   time.Duration
	FiltersTTL time.Duration
}

type LogConfig struct {
	Level      string
	OutputPath string
}

type BridgeConfig struct {
	QueueSize int
	Language  string
}

type MapConfig struct {
	TablesFile string
}

func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile читает конфигурацию из файла и переменных окружения.
// Отсутствие файла не ошибка: клиент может настраиваться только окружением.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("EXPLORER_HOST"),
			Port:        v.GetInt("EXPLORER_PORT"),
			Env:         v.GetString("EXPLORER_ENV"),
			CORSOrigins: v.GetString("EXPLORER_CORS_ORIGINS"),
		},
		API: APIConfig{
			BaseURL:        strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
			RequestTimeout: time.Duration(v.GetInt("API_TIMEOUT")) * time.Second,
			Breaker: BreakerConfig{
				MaxRequests:      v.GetUint32("API_BREAKER_MAX_REQUESTS"),
				Interval:         time.Duration(v.GetInt("API_BREAKER_INTERVAL")) * time.Second,
				Timeout:          time.Duration(v.GetInt("API_BREAKER_TIMEOUT")) * time.Second,
				FailureThreshold: v.GetFloat64("API_BREAKER_FAILURE_RATIO"),
				MinRequests:      v.GetUint32("API_BREAKER_MIN_REQUESTS"),
			},
		},
		Storage: StorageConfig{
			Driver: v.GetString("STORAGE_DRIVER"),
			DSN:    v.GetString("STORAGE_DSN"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			StatsTTL:   time.Duration(v.GetInt("STATS_CACHE_TTL")) * time.Second,
			FiltersTTL: time.Duration(v.GetInt("FILTERS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			OutputPath: v.GetString("LOG_OUTPUT"),
		},
		Bridge: BridgeConfig{
			QueueSize: v.GetInt("BRIDGE_QUEUE_SIZE"),
			Language:  v.GetString("BRIDGE_LANGUAGE"),
		},
		Map: MapConfig{
			TablesFile: v.GetString("MAP_TABLES_FILE"),
		},
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Server.CORSOrigins == "" {
		c.Server.CORSOrigins = "http://localhost:8090,http://127.0.0.1:8090"
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://10.0.2.2:3001/api"
	}
	if c.API.RequestTimeout == 0 {
		c.API.RequestTimeout = 30 * time.Second
	}
	if c.API.Breaker.MaxRequests == 0 {
		c.API.Breaker.MaxRequests = 5
	}
	if c.API.Breaker.Interval == 0 {
		c.API.Breaker.Interval = 30 * time.Second
	}
	if c.API.Breaker.Timeout == 0 {
		c.API.Breaker.Timeout = 60 * time.Second
	}
	if c.API.Breaker.FailureThreshold == 0 {
		c.API.Breaker.FailureThreshold = 0.8
	}
	if c.API.Breaker.MinRequests == 0 {
		c.API.Breaker.MinRequests = 5
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite3"
	}
	if c.Storage.DSN == "" && c.Storage.Driver == "sqlite3" {
		c.Storage.DSN = "file:explorer.db?_busy_timeout=5000"
	}
	if c.Redis.Host == "" {
		c.Redis.Host = "localhost"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Cache.StatsTTL == 0 {
		c.Cache.StatsTTL = time.Hour
	}
	if c.Cache.FiltersTTL == 0 {
		c.Cache.FiltersTTL = 10 * time.Minute
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Bridge.QueueSize == 0 {
		c.Bridge.QueueSize = 64
	}
	if c.Bridge.Language == "" {
		c.Bridge.Language = "es"
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "sqlite3", "pgx", "postgres":
		if c.Storage.DSN == "" {
			return fmt.Errorf("config: STORAGE_DSN is required for driver %q", c.Storage.Driver)
		}
	case "redis":
		if !c.Redis.Enabled {
			return fmt.Errorf("config: STORAGE_DRIVER=redis requires REDIS_ENABLED=true")
		}
	default:
		return fmt.Errorf("config: unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.API.Breaker.FailureThreshold <= 0 || c.API.Breaker.FailureThreshold > 1 {
		return fmt.Errorf("config: API_BREAKER_FAILURE_RATIO must be in (0, 1]")
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
