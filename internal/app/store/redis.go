package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// keyField хранится в каждом хеше, чтобы запись из одних null-колонок
// всё равно существовала.
const keyField = "_key"

var (
	insertIfAbsentScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  return redis.call('HGETALL', KEYS[1])
end
redis.call('HSET', KEYS[1], unpack(ARGV, 3))
redis.call('ZADD', KEYS[2], ARGV[1], ARGV[2])
return false
`)

	// ARGV[1] - число пар поле/значение для записи, остальные аргументы -
	// удаляемые поля.
	updateScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return 0
end
local n = tonumber(ARGV[1])
if n > 0 then
  redis.call('HSET', KEYS[1], unpack(ARGV, 2, 1 + 2 * n))
end
for i = 2 + 2 * n, #ARGV do
  redis.call('HDEL', KEYS[1], ARGV[i])
end
return 1
`)

	deleteScript = redis.NewScript(`
local n = redis.call('DEL', KEYS[1])
redis.call('ZREM', KEYS[2], ARGV[1])
return n
`)
)

// RedisStore хранит каждую запись в хеше, а порядок ключей - в sorted set.
// Целые ключи используются как score, у строковых score 0, поэтому они
// упорядочены лексикографически.
type RedisStore[K Key] struct {
	client *redis.Client
	schema Schema
	logger *zap.SugaredLogger
}

func NewRedisStore[K Key](client *redis.Client, schema Schema, logger *zap.SugaredLogger) *RedisStore[K] {
	return &RedisStore[K]{client: client, schema: schema, logger: logger}
}

func (r *RedisStore[K]) recordKey(key K) string {
	return r.schema.Table + ":rec:" + formatKey(key)
}

func (r *RedisStore[K]) indexKey() string { return r.schema.Table + ":idx" }

func (r *RedisStore[K]) seqKey() string { return r.schema.Table + ":seq" }

func score[K Key](key K) float64 {
	if n, ok := any(key).(int64); ok {
		return float64(n)
	}
	return 0
}

// Init проверяет соединение: Redis не требует подготовки.
func (r *RedisStore[K]) Init(ctx context.Context) error {
	return r.Ping(ctx)
}

func (r *RedisStore[K]) Ping(ctx context.Context) error {
	return classify("ping", r.client.Ping(ctx).Err())
}

func (r *RedisStore[K]) Close() error {
	return r.client.Close()
}

func (r *RedisStore[K]) InsertIfAbsent(ctx context.Context, key K, rec Record) (Record, bool, error) {
	rec, err := r.schema.Normalize(rec)
	if err != nil {
		return nil, false, err
	}

	member := formatKey(key)
	args := []any{score(key), member, keyField, member}
	args = append(args, r.encode(rec)...)

	existing, err := insertIfAbsentScript.Run(ctx, r.client, []string{r.recordKey(key), r.indexKey()}, args...).StringSlice()
	if errors.Is(err, redis.Nil) {
		return rec, true, nil
	}
	if err != nil {
		r.logger.Errorw("Failed to insert record", "table", r.schema.Table, "key", key, "error", err)
		return nil, false, classify("insert", err)
	}

	stored, err := r.decode(pairs(existing))
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

func (r *RedisStore[K]) InsertAuto(ctx context.Context, rec Record) (K, error) {
	var zero K
	if !r.schema.AutoKey {
		return zero, ErrNoAutoKey
	}
	rec, err := r.schema.Normalize(rec)
	if err != nil {
		return zero, err
	}

	seq, err := r.client.Incr(ctx, r.seqKey()).Result()
	if err != nil {
		return zero, classify("allocate key", err)
	}
	key, ok := keyFromSeq[K](seq)
	if !ok {
		return zero, ErrNoAutoKey
	}

	fields := append([]any{keyField, formatKey(key)}, r.encode(rec)...)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.recordKey(key), fields...)
		pipe.ZAdd(ctx, r.indexKey(), redis.Z{Score: score(key), Member: formatKey(key)})
		return nil
	})
	if err != nil {
		r.logger.Errorw("Failed to insert record", "table", r.schema.Table, "key", key, "error", err)
		return zero, classify("insert", err)
	}
	return key, nil
}

func (r *RedisStore[K]) Get(ctx context.Context, key K) (Record, error) {
	fields, err := r.client.HGetAll(ctx, r.recordKey(key)).Result()
	if err != nil {
		return nil, classify("get", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	return r.decode(fields)
}

func (r *RedisStore[K]) List(ctx context.Context) ([]Entry[K], error) {
	members, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, classify("list", err)
	}

	cmds := make([]*redis.MapStringStringCmd, len(members))
	_, err = r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, m := range members {
			key, err := parseKey[K](m)
			if err != nil {
				return err
			}
			cmds[i] = pipe.HGetAll(ctx, r.recordKey(key))
		}
		return nil
	})
	if err != nil {
		return nil, classify("list", err)
	}

	entries := make([]Entry[K], 0, len(members))
	for i, m := range members {
		fields := cmds[i].Val()
		if len(fields) == 0 {
			// удалена между ZRANGE и HGETALL
			continue
		}
		key, _ := parseKey[K](m)
		rec, err := r.decode(fields)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry[K]{Key: key, Record: rec})
	}
	return entries, nil
}

func (r *RedisStore[K]) Update(ctx context.Context, key K, patch Record) (Record, error) {
	if err := r.schema.CheckPatch(patch); err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return r.Get(ctx, key)
	}

	var sets, dels []any
	for _, c := range r.schema.patchColumns(patch) {
		v := patch[c.Name]
		if v == nil {
			dels = append(dels, c.Name)
			continue
		}
		sets = append(sets, c.Name, encodeValue(v))
	}
	args := append([]any{len(sets) / 2}, sets...)
	args = append(args, dels...)

	found, err := updateScript.Run(ctx, r.client, []string{r.recordKey(key)}, args...).Int()
	if err != nil {
		r.logger.Errorw("Failed to update record", "table", r.schema.Table, "key", key, "error", err)
		return nil, classify("update", err)
	}
	if found == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, key)
}

func (r *RedisStore[K]) Delete(ctx context.Context, key K) error {
	n, err := deleteScript.Run(ctx, r.client, []string{r.recordKey(key), r.indexKey()}, formatKey(key)).Int()
	if err != nil {
		return classify("delete", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// encode раскладывает нормализованную запись в пары поле/значение.
// null-колонки в хеш не попадают.
func (r *RedisStore[K]) encode(rec Record) []any {
	args := make([]any, 0, 2*len(rec))
	for _, c := range r.schema.Columns {
		v := rec[c.Name]
		if v == nil {
			continue
		}
		args = append(args, c.Name, encodeValue(v))
	}
	return args
}

func encodeValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "1"
		}
		return "0"
	case int64:
		return strconv.FormatInt(t, 10)
	}
	return fmt.Sprint(v)
}

func (r *RedisStore[K]) decode(fields map[string]string) (Record, error) {
	rec := make(Record, len(r.schema.Columns))
	for _, c := range r.schema.Columns {
		raw, ok := fields[c.Name]
		if !ok {
			rec[c.Name] = nil
			continue
		}
		switch c.Kind {
		case KindString:
			rec[c.Name] = raw
		case KindBool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: column %s: %v", ErrInvalidRecord, c.Name, err)
			}
			rec[c.Name] = b
		case KindInt:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: column %s: %v", ErrInvalidRecord, c.Name, err)
			}
			rec[c.Name] = n
		}
	}
	return rec, nil
}

func pairs(flat []string) map[string]string {
	m := make(map[string]string, len(flat)/2)
	for i := 0; i+1 < len(flat); i += 2 {
		m[flat[i]] = flat[i+1]
	}
	return m
}
