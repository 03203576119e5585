package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aseptimu/keyed-store/internal/app/store"
)

func newTodoService() *TodoService {
	return NewTodoService(store.NewMemoryStore[int64](ItemSchema), zap.NewNop().Sugar())
}

func ptr[T any](v T) *T { return &v }

func TestTodoService_Lifecycle(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, NewItem{Title: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, TodoItem{ID: 1, Title: "buy milk"}, created)

	got, err := svc.GetItem(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := svc.UpdateItem(ctx, created.ID, ItemPatch{Completed: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, TodoItem{ID: 1, Title: "buy milk", Completed: true}, updated)

	require.NoError(t, svc.DeleteItem(ctx, created.ID))
	_, err = svc.GetItem(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodoService_CreateWithDescription(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, NewItem{Title: "buy milk", Description: ptr("2 litres"), Completed: true})
	require.NoError(t, err)

	got, err := svc.GetItem(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Description)
	assert.Equal(t, "2 litres", *got.Description)
	assert.True(t, got.Completed)
}

func TestTodoService_ListOrderedByID(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	for _, title := range []string{"a", "b", "c"} {
		_, err := svc.CreateItem(ctx, NewItem{Title: title})
		require.NoError(t, err)
	}

	items, err = svc.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, item := range items {
		assert.Equal(t, int64(i+1), item.ID)
	}
	assert.Equal(t, "c", items[2].Title)
}

func TestTodoService_EmptyPatch(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, NewItem{Title: "buy milk", Description: ptr("note")})
	require.NoError(t, err)

	updated, err := svc.UpdateItem(ctx, created.ID, ItemPatch{})
	require.NoError(t, err)
	assert.Equal(t, created, updated)
}

func TestTodoService_NotFound(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	_, err := svc.GetItem(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateItem(ctx, 1, ItemPatch{Title: ptr("ghost")})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.DeleteItem(ctx, 1), ErrNotFound)

	items, err := svc.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
