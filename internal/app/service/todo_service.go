package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aseptimu/keyed-store/internal/app/store"
)

// ItemSchema описывает таблицу items.
var ItemSchema = store.MustSchema("items", "id", true,
	store.Column{Name: "title", Kind: store.KindString},
	store.Column{Name: "description", Kind: store.KindString, Nullable: true},
	store.Column{Name: "completed", Kind: store.KindBool, Default: false},
)

type TodoItem struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

type NewItem struct {
	Title       string
	Description *string
	Completed   bool
}

// ItemPatch - частичное обновление: nil-поля не меняются.
type ItemPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}

type ItemManager interface {
	CreateItem(ctx context.Context, item NewItem) (TodoItem, error)
	ListItems(ctx context.Context) ([]TodoItem, error)
	GetItem(ctx context.Context, id int64) (TodoItem, error)
	UpdateItem(ctx context.Context, id int64, patch ItemPatch) (TodoItem, error)
	DeleteItem(ctx context.Context, id int64) error
}

type TodoService struct {
	store  store.Store[int64]
	logger *zap.SugaredLogger
}

func NewTodoService(s store.Store[int64], logger *zap.SugaredLogger) *TodoService {
	return &TodoService{store: s, logger: logger}
}

func (s *TodoService) CreateItem(ctx context.Context, item NewItem) (TodoItem, error) {
	rec := store.Record{
		"title":     item.Title,
		"completed": item.Completed,
	}
	if item.Description != nil {
		rec["description"] = *item.Description
	}

	id, err := s.store.InsertAuto(ctx, rec)
	if err != nil {
		return TodoItem{}, err
	}
	s.logger.Debugw("Item created", "id", id)
	return TodoItem{ID: id, Title: item.Title, Description: item.Description, Completed: item.Completed}, nil
}

func (s *TodoService) ListItems(ctx context.Context) ([]TodoItem, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]TodoItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, itemFromRecord(e.Key, e.Record))
	}
	return items, nil
}

func (s *TodoService) GetItem(ctx context.Context, id int64) (TodoItem, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return TodoItem{}, notFound(err)
	}
	return itemFromRecord(id, rec), nil
}

func (s *TodoService) UpdateItem(ctx context.Context, id int64, patch ItemPatch) (TodoItem, error) {
	fields := store.Record{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Completed != nil {
		fields["completed"] = *patch.Completed
	}

	rec, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return TodoItem{}, notFound(err)
	}
	return itemFromRecord(id, rec), nil
}

func (s *TodoService) DeleteItem(ctx context.Context, id int64) error {
	return notFound(s.store.Delete(ctx, id))
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func itemFromRecord(id int64, rec store.Record) TodoItem {
	item := TodoItem{ID: id}
	item.Title, _ = rec["title"].(string)
	item.Completed, _ = rec["completed"].(bool)
	if d, ok := rec["description"].(string); ok {
		item.Description = &d
	}
	return item
}
