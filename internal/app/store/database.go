package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SQLStore хранит записи в одной таблице PostgreSQL или SQLite.
type SQLStore[K Key] struct {
	db      *sql.DB
	dsn     string
	q       queries
	timeout time.Duration
	logger  *zap.SugaredLogger

	initOnce sync.Once
	initErr  error
}

// SQLOption настраивает SQLStore.
type SQLOption func(*sqlOptions)

type sqlOptions struct {
	timeout time.Duration
	dsn     string
}

// WithQueryTimeout ограничивает время каждого запроса. Ноль снимает ограничение.
func WithQueryTimeout(d time.Duration) SQLOption {
	return func(o *sqlOptions) { o.timeout = d }
}

// WithMigrations включает применение встроенных миграций таблицы в Init
// через соединение по dsn.
func WithMigrations(dsn string) SQLOption {
	return func(o *sqlOptions) { o.dsn = dsn }
}

func NewSQLStore[K Key](db *sql.DB, dialect Dialect, schema Schema, logger *zap.SugaredLogger, opts ...SQLOption) *SQLStore[K] {
	var o sqlOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &SQLStore[K]{
		db:      db,
		dsn:     o.dsn,
		q:       newQueries(dialect, schema),
		timeout: o.timeout,
		logger:  logger,
	}
}

// Init один раз применяет миграции.
func (s *SQLStore[K]) Init(ctx context.Context) error {
	s.initOnce.Do(func() {
		if s.dsn == "" {
			return
		}
		if err := MigrateDB(s.q.dialect, s.dsn, s.q.schema.Table, s.logger); err != nil {
			s.initErr = classify("migrate", err)
		}
	})
	return s.initErr
}

func (s *SQLStore[K]) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *SQLStore[K]) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return classify("ping", s.db.PingContext(ctx))
}

func (s *SQLStore[K]) Close() error {
	return s.db.Close()
}

func (s *SQLStore[K]) InsertIfAbsent(ctx context.Context, key K, rec Record) (Record, bool, error) {
	rec, err := s.q.schema.Normalize(rec)
	if err != nil {
		return nil, false, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Debugw("Attempting to insert record", "table", s.q.schema.Table, "key", key)

	args := append([]any{key}, s.values(rec)...)
	res, err := s.db.ExecContext(ctx, s.q.insertIfAbsent, args...)
	if err != nil {
		s.logger.Errorw("Failed to insert record", "table", s.q.schema.Table, "key", key, "error", err)
		return nil, false, classify("insert", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, false, classify("insert", err)
	}
	if affected > 0 {
		return rec, true, nil
	}

	s.logger.Debugw("Record already exists, fetching it", "table", s.q.schema.Table, "key", key)
	existing, err := s.get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *SQLStore[K]) InsertAuto(ctx context.Context, rec Record) (K, error) {
	var key K
	if !s.q.schema.AutoKey {
		return key, ErrNoAutoKey
	}
	rec, err := s.q.schema.Normalize(rec)
	if err != nil {
		return key, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = s.db.QueryRowContext(ctx, s.q.insertAuto, s.values(rec)...).Scan(&key)
	if err != nil {
		s.logger.Errorw("Failed to insert record", "table", s.q.schema.Table, "error", err)
		return key, classify("insert", err)
	}
	return key, nil
}

func (s *SQLStore[K]) Get(ctx context.Context, key K) (Record, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.get(ctx, key)
}

func (s *SQLStore[K]) get(ctx context.Context, key K) (Record, error) {
	holders := s.holders()
	err := s.db.QueryRowContext(ctx, s.q.selectOne, key).Scan(holders...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify("select", err)
	}
	return s.record(holders), nil
}

func (s *SQLStore[K]) List(ctx context.Context) ([]Entry[K], error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, s.q.selectAll)
	if err != nil {
		return nil, classify("select", err)
	}
	defer rows.Close()

	entries := make([]Entry[K], 0)
	for rows.Next() {
		var key K
		holders := s.holders()
		if err := rows.Scan(append([]any{&key}, holders...)...); err != nil {
			return nil, classify("scan", err)
		}
		entries = append(entries, Entry[K]{Key: key, Record: s.record(holders)})
	}
	if err := rows.Err(); err != nil {
		return nil, classify("select", err)
	}
	return entries, nil
}

func (s *SQLStore[K]) Update(ctx context.Context, key K, patch Record) (Record, error) {
	if err := s.q.schema.CheckPatch(patch); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if len(patch) == 0 {
		return s.get(ctx, key)
	}

	query, args := s.q.update(patch)
	holders := s.holders()
	err := s.db.QueryRowContext(ctx, query, append(args, key)...).Scan(holders...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Errorw("Failed to update record", "table", s.q.schema.Table, "key", key, "error", err)
		return nil, classify("update", err)
	}
	return s.record(holders), nil
}

func (s *SQLStore[K]) Delete(ctx context.Context, key K) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.db.ExecContext(ctx, s.q.delete, key)
	if err != nil {
		s.logger.Errorw("Failed to delete record", "table", s.q.schema.Table, "key", key, "error", err)
		return classify("delete", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return classify("delete", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	s.logger.Debugw("Record deleted", "table", s.q.schema.Table, "key", key)
	return nil
}

// values возвращает параметры запроса для нормализованной записи в порядке колонок.
func (s *SQLStore[K]) values(rec Record) []any {
	args := make([]any, len(s.q.schema.Columns))
	for i, c := range s.q.schema.Columns {
		args[i] = rec[c.Name]
	}
	return args
}

func (s *SQLStore[K]) holders() []any {
	holders := make([]any, len(s.q.schema.Columns))
	for i, c := range s.q.schema.Columns {
		switch c.Kind {
		case KindString:
			holders[i] = new(sql.NullString)
		case KindBool:
			holders[i] = new(sql.NullBool)
		case KindInt:
			holders[i] = new(sql.NullInt64)
		}
	}
	return holders
}

func (s *SQLStore[K]) record(holders []any) Record {
	rec := make(Record, len(holders))
	for i, c := range s.q.schema.Columns {
		var v any
		switch h := holders[i].(type) {
		case *sql.NullString:
			if h.Valid {
				v = h.String
			}
		case *sql.NullBool:
			if h.Valid {
				v = h.Bool
			}
		case *sql.NullInt64:
			if h.Valid {
				v = h.Int64
			}
		}
		rec[c.Name] = v
	}
	return rec
}
