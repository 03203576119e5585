package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aseptimu/keyed-store/internal/app/database"
)

// Options задают, как Open создаёт хранилище.
type Options struct {
	// DSN выбирает бэкенд по схеме: "" или memory://, file://<path>,
	// sqlite://<path>, postgres:// или postgresql://, redis:// или rediss://.
	DSN          string
	QueryTimeout time.Duration
}

// Open создаёт бэкенд по opts.DSN и вызывает у него Init.
func Open[K Key](ctx context.Context, opts Options, schema Schema, logger *zap.SugaredLogger) (Store[K], error) {
	s, err := build[K](opts, schema, logger)
	if err != nil {
		return nil, err
	}
	if err := s.Init(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func build[K Key](opts Options, schema Schema, logger *zap.SugaredLogger) (Store[K], error) {
	dsn := opts.DSN
	switch {
	case dsn == "" || dsn == "memory://":
		logger.Infow("In-memory storage enabled", "table", schema.Table)
		return NewMemoryStore[K](schema), nil

	case strings.HasPrefix(dsn, "file://"):
		path := strings.TrimPrefix(dsn, "file://")
		logger.Infow("File storage enabled", "table", schema.Table, "path", path)
		return NewFileStore[K](path, schema, logger), nil

	case strings.HasPrefix(dsn, "sqlite://"):
		path := strings.TrimPrefix(dsn, "sqlite://")
		db, err := database.NewSQLite(path)
		if err != nil {
			return nil, classify("open sqlite", err)
		}
		logger.Infow("SQLite storage enabled", "table", schema.Table, "path", path)
		return NewSQLStore[K](db, SQLite, schema, logger,
			WithQueryTimeout(opts.QueryTimeout), WithMigrations(database.SQLiteDSN(path))), nil

	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := database.NewPostgres(dsn)
		if err != nil {
			return nil, classify("open postgres", err)
		}
		logger.Infow("Database storage enabled", "table", schema.Table)
		return NewSQLStore[K](db, Postgres, schema, logger,
			WithQueryTimeout(opts.QueryTimeout), WithMigrations(dsn)), nil

	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		ropts, err := redis.ParseURL(dsn)
		if err != nil {
			return nil, fmt.Errorf("invalid redis DSN: %w", err)
		}
		if opts.QueryTimeout > 0 {
			ropts.ReadTimeout = opts.QueryTimeout
			ropts.WriteTimeout = opts.QueryTimeout
		}
		logger.Infow("Redis storage enabled", "table", schema.Table, "addr", ropts.Addr)
		return NewRedisStore[K](redis.NewClient(ropts), schema, logger), nil
	}

	return nil, fmt.Errorf("unsupported storage DSN scheme in %q", redactDSN(dsn))
}

// redactDSN оставляет только схему, чтобы учётные данные не попали в логи.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	return "..."
}
