package store

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind - скалярный тип колонки.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Column описывает одну неключевую колонку таблицы.
type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
	// Default подставляется при вставке, если колонки нет в записи.
	Default any
}

// Schema описывает одну таблицу. Порядок колонок значим: в нём строится
// SQL и применяются патчи.
type Schema struct {
	Table     string
	KeyColumn string
	// AutoKey: ключи выделяет хранилище в InsertAuto.
	AutoKey bool
	Columns []Column

	index map[string]int
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// NewSchema проверяет идентификаторы и строит белый список колонок.
func NewSchema(table, keyColumn string, autoKey bool, columns ...Column) (Schema, error) {
	s := Schema{
		Table:     table,
		KeyColumn: keyColumn,
		AutoKey:   autoKey,
		Columns:   columns,
		index:     make(map[string]int, len(columns)),
	}

	for _, ident := range []string{table, keyColumn} {
		if !identRe.MatchString(ident) {
			return Schema{}, fmt.Errorf("invalid identifier %q", ident)
		}
	}
	if len(columns) == 0 {
		return Schema{}, fmt.Errorf("table %s has no columns", table)
	}

	for i, c := range columns {
		if !identRe.MatchString(c.Name) {
			return Schema{}, fmt.Errorf("invalid column name %q", c.Name)
		}
		if c.Name == keyColumn {
			return Schema{}, fmt.Errorf("column %q duplicates the key column", c.Name)
		}
		if _, dup := s.index[c.Name]; dup {
			return Schema{}, fmt.Errorf("duplicate column %q", c.Name)
		}
		if c.Default != nil {
			if err := checkKind(c, c.Default); err != nil {
				return Schema{}, fmt.Errorf("default of %s: %w", c.Name, err)
			}
		}
		s.index[c.Name] = i
	}

	return s, nil
}

// MustSchema как NewSchema, но паникует при ошибке. Для схем на уровне
// пакета.
func MustSchema(table, keyColumn string, autoKey bool, columns ...Column) Schema {
	s, err := NewSchema(table, keyColumn, autoKey, columns...)
	if err != nil {
		panic(err)
	}
	return s
}

// ColumnNames возвращает имена колонок в порядке схемы.
func (s Schema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

func (s Schema) column(name string) (Column, bool) {
	i, ok := s.index[name]
	if !ok {
		return Column{}, false
	}
	return s.Columns[i], true
}

// Normalize возвращает полную запись для вставки: все колонки на месте,
// значения по умолчанию подставлены, типы проверены.
func (s Schema) Normalize(rec Record) (Record, error) {
	if err := s.checkUnknown(rec); err != nil {
		return nil, err
	}

	out := make(Record, len(s.Columns))
	for _, c := range s.Columns {
		v, present := rec[c.Name]
		if !present || v == nil {
			switch {
			case present && c.Nullable:
				out[c.Name] = nil
				continue
			case !present && c.Default != nil:
				out[c.Name] = c.Default
				continue
			case !present && c.Nullable:
				out[c.Name] = nil
				continue
			}
			return nil, fmt.Errorf("%w: column %s is required", ErrInvalidRecord, c.Name)
		}
		if err := checkKind(c, v); err != nil {
			return nil, err
		}
		out[c.Name] = v
	}
	return out, nil
}

// CheckPatch проверяет частичный патч по белому списку. nil допустим
// только для nullable-колонок.
func (s Schema) CheckPatch(patch Record) error {
	if err := s.checkUnknown(patch); err != nil {
		return err
	}
	for name, v := range patch {
		c, _ := s.column(name)
		if v == nil {
			if !c.Nullable {
				return fmt.Errorf("%w: column %s is not nullable", ErrInvalidRecord, name)
			}
			continue
		}
		if err := checkKind(c, v); err != nil {
			return err
		}
	}
	return nil
}

// patchColumns возвращает колонки патча в порядке схемы.
func (s Schema) patchColumns(patch Record) []Column {
	cols := make([]Column, 0, len(patch))
	for _, c := range s.Columns {
		if _, ok := patch[c.Name]; ok {
			cols = append(cols, c)
		}
	}
	return cols
}

func (s Schema) checkUnknown(rec Record) error {
	var unknown []string
	for name := range rec {
		if _, ok := s.index[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: unknown columns %s", ErrInvalidRecord, strings.Join(unknown, ", "))
	}
	return nil
}

func checkKind(c Column, v any) error {
	ok := false
	switch c.Kind {
	case KindString:
		_, ok = v.(string)
	case KindBool:
		_, ok = v.(bool)
	case KindInt:
		_, ok = v.(int64)
	}
	if !ok {
		return fmt.Errorf("%w: column %s expects %s, got %T", ErrInvalidRecord, c.Name, c.Kind, v)
	}
	return nil
}
