package kvstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/heritage-explorer/internal/config"
	"github.com/heritage-explorer/internal/domain/repository"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_store (
	item_key   TEXT PRIMARY KEY,
	item_value TEXT NOT NULL
)`

// SQLStore - key-value хранилище в таблице kv_store.
// sqlite3 используется на устройстве, pgx и postgres для общих инсталляций.
type SQLStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

var _ repository.KeyValueStore = (*SQLStore)(nil)

type kvRow struct {
	Key   string `db:"item_key"`
	Value string `db:"item_value"`
}

func NewSQLStore(cfg *config.StorageConfig, logger *zap.Logger) (*SQLStore, error) {
	db, err := sqlx.Connect(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s store: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite3" {
		// один писатель на файл
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv schema: %w", err)
	}

	logger.Info("Key-value store connected", zap.String("driver", cfg.Driver))

	return &SQLStore{db: db, logger: logger}, nil
}

func (s *SQLStore) MultiGet(ctx context.Context, keys ...string) (map[string]string, error) {
	result := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`SELECT item_key, item_value FROM kv_store WHERE item_key IN (?)`, keys)
	if err != nil {
		return nil, fmt.Errorf("build multi get: %w", err)
	}

	var rows []kvRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(query), args...); err != nil {
		s.logger.Error("Failed to read keys", zap.Strings("keys", keys), zap.Error(err))
		return nil, fmt.Errorf("multi get: %w", err)
	}

	for _, r := range rows {
		result[r.Key] = r.Value
	}
	return result, nil
}

// MultiSet записывает все пары в одной транзакции
func (s *SQLStore) MultiSet(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	upsert := s.db.Rebind(`INSERT INTO kv_store (item_key, item_value) VALUES (?, ?)
		ON CONFLICT (item_key) DO UPDATE SET item_value = excluded.item_value`)

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		for k, v := range values {
			if _, err := tx.ExecContext(ctx, upsert, k, v); err != nil {
				return fmt.Errorf("set %s: %w", k, err)
			}
		}
		return nil
	})
}

// MultiRemove удаляет все ключи в одной транзакции
func (s *SQLStore) MultiRemove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM kv_store WHERE item_key IN (?)`, keys)
	if err != nil {
		return fmt.Errorf("build multi remove: %w", err)
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		return err
	})
}

func (s *SQLStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("Failed to rollback", zap.Error(rbErr))
		}
		s.logger.Error("Key-value transaction failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	s.logger.Info("Closing key-value store")
	return s.db.Close()
}
