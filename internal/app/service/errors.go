package service

import "errors"

var (
	// ErrNotFound возвращается, если короткая ссылка или задача не найдена.
	ErrNotFound = errors.New("not found")
	// ErrInvalidURL возвращается Shorten, если вход не абсолютный http(s) URL.
	ErrInvalidURL = errors.New("invalid URL format")
)
