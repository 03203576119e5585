// Package store реализует хранилище записей по ключу. Ключ задаёт
// вызывающий или выделяет само хранилище; вставка без перезаписи
// идемпотентна.
package store

import "context"

// Store - общий контракт всех бэкендов хранилища.
type Store[K Key] interface {
	// Init подготавливает бэкенд. Идемпотентен и безопасен при параллельных
	// вызовах: все получают результат первого запуска.
	Init(ctx context.Context) error

	// InsertIfAbsent сохраняет rec под key, если записи ещё нет; иначе
	// возвращает существующую запись и created=false.
	InsertIfAbsent(ctx context.Context, key K, rec Record) (stored Record, created bool, err error)
	// InsertAuto выделяет ключ больше всех ранее выделенных и сохраняет
	// под ним rec.
	InsertAuto(ctx context.Context, rec Record) (K, error)
	Get(ctx context.Context, key K) (Record, error)
	// List возвращает все записи, упорядоченные по ключу.
	List(ctx context.Context) ([]Entry[K], error)
	// Update применяет колонки из patch и возвращает результат.
	Update(ctx context.Context, key K, patch Record) (Record, error)
	Delete(ctx context.Context, key K) error

	Ping(ctx context.Context) error
	Close() error
}
