// Package service содержит бизнес-логику коротких ссылок и TODO-задач
// поверх хранилища записей.
package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/aseptimu/keyed-store/internal/app/store"
)

//go:generate mockgen -destination=../mocks/mock_service.go -package=mocks . URLShortener,ItemManager

// shortIDLen - число hex-символов дайджеста в ключе.
const shortIDLen = 8

// LinkSchema описывает таблицу urls.
var LinkSchema = store.MustSchema("urls", "short_id", false,
	store.Column{Name: "original_url", Kind: store.KindString},
)

type ShortLink struct {
	ShortID     string `json:"short_id"`
	OriginalURL string `json:"original_url"`
}

type URLShortener interface {
	Shorten(ctx context.Context, input string) (ShortLink, error)
	Lookup(ctx context.Context, shortID string) (ShortLink, error)
}

type URLService struct {
	store  store.Store[string]
	logger *zap.SugaredLogger

	// lookups объединяет параллельные чтения одного short_id. Ссылки
	// не изменяются, поэтому общий результат корректен.
	lookups singleflight.Group
}

func NewURLService(s store.Store[string], logger *zap.SugaredLogger) *URLService {
	return &URLService{store: s, logger: logger}
}

// CanonicalURL разбирает input и возвращает строку, из которой выводится
// ключ. Принимаются только абсолютные http и https URL.
func CanonicalURL(input string) (string, error) {
	u, err := url.Parse(input)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", ErrInvalidURL
	}
	return u.String(), nil
}

// DeriveShortID возвращает первые 8 hex-символов (в нижнем регистре)
// MD5-дайджеста canonicalURL. Разные URL с общим префиксом указывают
// на тот, что был сохранён первым.
func DeriveShortID(canonicalURL string) string {
	sum := md5.Sum([]byte(canonicalURL))
	return hex.EncodeToString(sum[:])[:shortIDLen]
}

// Shorten сохраняет input под выведенным ключом, если там ещё нет записи,
// и в любом случае возвращает сохранённую ссылку.
func (s *URLService) Shorten(ctx context.Context, input string) (ShortLink, error) {
	canonical, err := CanonicalURL(input)
	if err != nil {
		return ShortLink{}, err
	}

	shortID := DeriveShortID(canonical)
	rec, created, err := s.store.InsertIfAbsent(ctx, shortID, store.Record{"original_url": canonical})
	if err != nil {
		return ShortLink{}, err
	}
	if !created {
		s.logger.Debugw("Short link already exists", "short_id", shortID)
	}
	return linkFromRecord(shortID, rec), nil
}

func (s *URLService) Lookup(ctx context.Context, shortID string) (ShortLink, error) {
	v, err, shared := s.lookups.Do(shortID, func() (any, error) {
		return s.store.Get(context.WithoutCancel(ctx), shortID)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ShortLink{}, ErrNotFound
	}
	if err != nil {
		return ShortLink{}, err
	}
	if shared {
		s.logger.Debugw("Short link lookup shared", "short_id", shortID)
	}
	return linkFromRecord(shortID, v.(store.Record)), nil
}

func linkFromRecord(shortID string, rec store.Record) ShortLink {
	original, _ := rec["original_url"].(string)
	return ShortLink{ShortID: shortID, OriginalURL: original}
}
