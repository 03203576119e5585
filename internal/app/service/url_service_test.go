package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aseptimu/keyed-store/internal/app/store"
)

// stubStore переопределяет только нужные тесту методы, остальные паникуют
// через nil-интерфейс.
type stubStore[K store.Key] struct {
	store.Store[K]
	insertFn func(ctx context.Context, key K, rec store.Record) (store.Record, bool, error)
	getFn    func(ctx context.Context, key K) (store.Record, error)
}

func (s *stubStore[K]) InsertIfAbsent(ctx context.Context, key K, rec store.Record) (store.Record, bool, error) {
	return s.insertFn(ctx, key, rec)
}

func (s *stubStore[K]) Get(ctx context.Context, key K) (store.Record, error) {
	return s.getFn(ctx, key)
}

func newURLService() *URLService {
	return NewURLService(store.NewMemoryStore[string](LinkSchema), zap.NewNop().Sugar())
}

func TestDeriveShortID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{url: "https://example.com/a", want: "cd69b81e"},
		{url: "https://example.com", want: "c984d06a"},
		{url: "http://example.com/a", want: "3e27a17e"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got := DeriveShortID(tt.url)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, DeriveShortID(tt.url))
			assert.Len(t, got, 8)
		})
	}
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "https://example.com/a", want: "https://example.com/a"},
		{name: "scheme lowercased", input: "HTTPS://example.com/a", want: "https://example.com/a"},
		{name: "host case kept", input: "https://Example.com/a", want: "https://Example.com/a"},
		{name: "bare host gets no slash", input: "https://example.com", want: "https://example.com"},
		{name: "trailing slash kept", input: "https://example.com/a/", want: "https://example.com/a/"},
		{name: "query order kept", input: "https://example.com/?b=2&a=1", want: "https://example.com/?b=2&a=1"},
		{name: "relative", input: "/a", wantErr: true},
		{name: "not a url", input: "not a url", wantErr: true},
		{name: "ftp", input: "ftp://example.com/file", wantErr: true},
		{name: "no host", input: "https:///a", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CanonicalURL(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidURL)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShorten_Idempotent(t *testing.T) {
	svc := newURLService()
	ctx := context.Background()

	first, err := svc.Shorten(ctx, "https://example.com/a")
	require.NoError(t, err)
	second, err := svc.Shorten(ctx, "https://example.com/a")
	require.NoError(t, err)

	assert.Equal(t, ShortLink{ShortID: "cd69b81e", OriginalURL: "https://example.com/a"}, first)
	assert.Equal(t, first, second)

	found, err := svc.Lookup(ctx, "cd69b81e")
	require.NoError(t, err)
	assert.Equal(t, first, found)
}

func TestShorten_CollisionReturnsFirstRecord(t *testing.T) {
	st := &stubStore[string]{
		insertFn: func(_ context.Context, key string, _ store.Record) (store.Record, bool, error) {
			return store.Record{"original_url": "https://first.example"}, false, nil
		},
	}
	svc := NewURLService(st, zap.NewNop().Sugar())

	link, err := svc.Shorten(context.Background(), "https://second.example")
	require.NoError(t, err)
	assert.Equal(t, "https://first.example", link.OriginalURL)
	assert.Equal(t, DeriveShortID("https://second.example"), link.ShortID)
}

func TestShorten_InvalidURL(t *testing.T) {
	_, err := newURLService().Shorten(context.Background(), "invalid")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestShorten_StoreError(t *testing.T) {
	storeErr := errors.New("insert: storage unavailable")
	st := &stubStore[string]{
		insertFn: func(context.Context, string, store.Record) (store.Record, bool, error) {
			return nil, false, storeErr
		},
	}
	_, err := NewURLService(st, zap.NewNop().Sugar()).Shorten(context.Background(), "https://example.com")
	assert.ErrorIs(t, err, storeErr)
}

func TestLookup_NotFound(t *testing.T) {
	_, err := newURLService().Lookup(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup_StoreError(t *testing.T) {
	st := &stubStore[string]{
		getFn: func(context.Context, string) (store.Record, error) {
			return nil, store.ErrUnavailable
		},
	}
	_, err := NewURLService(st, zap.NewNop().Sugar()).Lookup(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, store.ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotFound)
}
