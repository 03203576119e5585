package store

import (
	"cmp"
	"strconv"
)

// Key - допустимые типы ключей хранилища.
type Key interface {
	int64 | string
}

// Record отображает имена колонок в скалярные значения: string, bool, int64 или nil.
type Record map[string]any

// Clone возвращает поверхностную копию r. Значения скалярные, поэтому
// копия не делит с r изменяемых данных.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Entry - запись вместе с ключом.
type Entry[K Key] struct {
	Key    K
	Record Record
}

func compareKeys[K Key](a, b K) int {
	return cmp.Compare(a, b)
}

func formatKey[K Key](k K) string {
	switch v := any(k).(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	}
	return ""
}

func parseKey[K Key](s string) (K, error) {
	var k K
	switch p := any(&k).(type) {
	case *int64:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return k, err
		}
		*p = n
	case *string:
		*p = s
	}
	return k, nil
}

// keyFromSeq переводит выделенный номер в K. Для строковых ключей
// возвращает false.
func keyFromSeq[K Key](seq int64) (K, bool) {
	var k K
	p, ok := any(&k).(*int64)
	if !ok {
		return k, false
	}
	*p = seq
	return k, true
}
