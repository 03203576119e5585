package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aseptimu/keyed-store/internal/app/database"
)

var (
	testLinks = MustSchema("urls", "short_id", false,
		Column{Name: "original_url", Kind: KindString},
	)
	testItems = MustSchema("items", "id", true,
		Column{Name: "title", Kind: KindString},
		Column{Name: "description", Kind: KindString, Nullable: true},
		Column{Name: "completed", Kind: KindBool, Default: false},
	)
)

func openMemory[K Key](_ *testing.T, schema Schema) Store[K] {
	return NewMemoryStore[K](schema)
}

func openFile[K Key](t *testing.T, schema Schema) Store[K] {
	t.Helper()
	s := NewFileStore[K](filepath.Join(t.TempDir(), schema.Table+".jsonl"), schema, zap.NewNop().Sugar())
	require.NoError(t, s.Init(context.Background()))
	return s
}

func openSQLite[K Key](t *testing.T, schema Schema) Store[K] {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewSQLite(path)
	require.NoError(t, err)

	s := NewSQLStore[K](db, SQLite, schema, zap.NewNop().Sugar(), WithMigrations(database.SQLiteDSN(path)))
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func openRedis[K Key](t *testing.T, schema Schema) Store[K] {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	s := NewRedisStore[K](client, schema, zap.NewNop().Sugar())
	require.NoError(t, s.Init(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

type opener[K Key] func(t *testing.T, schema Schema) Store[K]

func backends[K Key]() map[string]opener[K] {
	return map[string]opener[K]{
		"memory": openMemory[K],
		"file":   openFile[K],
		"sqlite": openSQLite[K],
		"redis":  openRedis[K],
	}
}
