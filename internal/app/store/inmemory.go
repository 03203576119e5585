package store

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore хранит записи в памяти процесса.
type MemoryStore[K Key] struct {
	schema Schema

	mu   sync.RWMutex
	data map[K]Record
	seq  int64
}

func NewMemoryStore[K Key](schema Schema) *MemoryStore[K] {
	return &MemoryStore[K]{
		schema: schema,
		data:   make(map[K]Record),
	}
}

func (m *MemoryStore[K]) Init(context.Context) error { return nil }

func (m *MemoryStore[K]) InsertIfAbsent(_ context.Context, key K, rec Record) (Record, bool, error) {
	rec, err := m.schema.Normalize(rec)
	if err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, found := m.data[key]; found {
		return existing.Clone(), false, nil
	}
	m.data[key] = rec
	return rec.Clone(), true, nil
}

func (m *MemoryStore[K]) InsertAuto(_ context.Context, rec Record) (K, error) {
	var zero K
	if !m.schema.AutoKey {
		return zero, ErrNoAutoKey
	}
	rec, err := m.schema.Normalize(rec)
	if err != nil {
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key, ok := keyFromSeq[K](m.seq + 1)
	if !ok {
		return zero, ErrNoAutoKey
	}
	m.seq++
	m.data[key] = rec
	return key, nil
}

func (m *MemoryStore[K]) Get(_ context.Context, key K) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, found := m.data[key]
	if !found {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (m *MemoryStore[K]) List(context.Context) ([]Entry[K], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]Entry[K], 0, len(m.data))
	for k, rec := range m.data {
		entries = append(entries, Entry[K]{Key: k, Record: rec.Clone()})
	}
	slices.SortFunc(entries, func(a, b Entry[K]) int {
		return compareKeys(a.Key, b.Key)
	})
	return entries, nil
}

func (m *MemoryStore[K]) Update(_ context.Context, key K, patch Record) (Record, error) {
	if err := m.schema.CheckPatch(patch); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, found := m.data[key]
	if !found {
		return nil, ErrNotFound
	}
	updated := rec.Clone()
	for name, v := range patch {
		updated[name] = v
	}
	m.data[key] = updated
	return updated.Clone(), nil
}

func (m *MemoryStore[K]) Delete(_ context.Context, key K) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, found := m.data[key]; !found {
		return ErrNotFound
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryStore[K]) Ping(context.Context) error { return nil }

func (m *MemoryStore[K]) Close() error { return nil }

// put кладёт rec под key без проверок.
func (m *MemoryStore[K]) put(key K, rec Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = rec
}

// remove удаляет key, не трогая счётчик ключей.
func (m *MemoryStore[K]) remove(key K) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
}

// restore загружает записи без проверки и сдвигает счётчик за
// наибольший восстановленный ключ.
func (m *MemoryStore[K]) restore(entries []Entry[K]) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		m.data[e.Key] = e.Record
		if n, ok := any(e.Key).(int64); ok && n > m.seq {
			m.seq = n
		}
	}
}

// restoreSeq поднимает счётчик ключей минимум до seq.
func (m *MemoryStore[K]) restoreSeq(seq int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if seq > m.seq {
		m.seq = seq
	}
}

// snapshot возвращает все записи по порядку ключей и последний выделенный ключ.
func (m *MemoryStore[K]) snapshot() ([]Entry[K], int64) {
	entries, _ := m.List(context.Background())

	m.mu.RLock()
	defer m.mu.RUnlock()
	return entries, m.seq
}
