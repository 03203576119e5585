package store

import (
	"strconv"
	"strings"
)

// Dialect описывает различия поддерживаемых SQL-движков.
type Dialect struct {
	Name   string
	Driver string
	// Placeholder возвращает n-й (с 1) параметр запроса.
	Placeholder func(n int) string
}

var (
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "pgx",
		Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	}
	SQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite3",
		Placeholder: func(int) string { return "?" },
	}
)

// queries хранит шаблоны запросов, построенные для одной схемы.
// Идентификаторы берутся только из проверенной схемы, значения всегда
// передаются параметрами.
type queries struct {
	dialect Dialect
	schema  Schema

	insertIfAbsent string
	insertAuto     string
	selectOne      string
	selectAll      string
	delete         string
}

func newQueries(d Dialect, s Schema) queries {
	cols := strings.Join(s.ColumnNames(), ", ")
	keyed := s.KeyColumn + ", " + cols

	return queries{
		dialect: d,
		schema:  s,

		insertIfAbsent: "INSERT INTO " + s.Table + " (" + keyed + ") VALUES (" + placeholders(d, 1, len(s.Columns)+1) +
			") ON CONFLICT (" + s.KeyColumn + ") DO NOTHING",
		insertAuto: "INSERT INTO " + s.Table + " (" + cols + ") VALUES (" + placeholders(d, 1, len(s.Columns)) +
			") RETURNING " + s.KeyColumn,
		selectOne: "SELECT " + cols + " FROM " + s.Table + " WHERE " + s.KeyColumn + " = " + d.Placeholder(1),
		selectAll: "SELECT " + keyed + " FROM " + s.Table + " ORDER BY " + s.KeyColumn,
		delete:    "DELETE FROM " + s.Table + " WHERE " + s.KeyColumn + " = " + d.Placeholder(1),
	}
}

// update строит запрос для проверенного патча. SET идут в порядке схемы,
// ключ - последний параметр.
func (q queries) update(patch Record) (string, []any) {
	cols := q.schema.patchColumns(patch)

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = c.Name + " = " + q.dialect.Placeholder(i+1)
		args = append(args, patch[c.Name])
	}

	query := "UPDATE " + q.schema.Table + " SET " + strings.Join(sets, ", ") +
		" WHERE " + q.schema.KeyColumn + " = " + q.dialect.Placeholder(len(cols)+1) +
		" RETURNING " + strings.Join(q.schema.ColumnNames(), ", ")
	return query, args
}

func placeholders(d Dialect, from, count int) string {
	ps := make([]string, count)
	for i := range ps {
		ps[i] = d.Placeholder(from + i)
	}
	return strings.Join(ps, ", ")
}
