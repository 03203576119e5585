package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchema(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		key     string
		columns []Column
		wantErr bool
	}{
		{name: "valid", table: "urls", key: "short_id", columns: []Column{{Name: "original_url"}}},
		{name: "injected table", table: "urls; DROP TABLE urls", key: "short_id", columns: []Column{{Name: "original_url"}}, wantErr: true},
		{name: "upper case column", table: "urls", key: "short_id", columns: []Column{{Name: "Original"}}, wantErr: true},
		{name: "no columns", table: "urls", key: "short_id", wantErr: true},
		{name: "column shadows key", table: "urls", key: "short_id", columns: []Column{{Name: "short_id"}}, wantErr: true},
		{name: "duplicate column", table: "urls", key: "short_id", columns: []Column{{Name: "a"}, {Name: "a"}}, wantErr: true},
		{name: "default of wrong kind", table: "items", key: "id", columns: []Column{{Name: "done", Kind: KindBool, Default: "no"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.table, tt.key, false, tt.columns...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMustSchema_Panics(t *testing.T) {
	assert.Panics(t, func() { MustSchema("bad table", "id", true, Column{Name: "x"}) })
}

func TestSchema_Normalize(t *testing.T) {
	rec, err := testItems.Normalize(Record{"title": "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, Record{"title": "buy milk", "description": nil, "completed": false}, rec)

	rec, err = testItems.Normalize(Record{"title": "buy milk", "description": nil, "completed": true})
	require.NoError(t, err)
	assert.Equal(t, Record{"title": "buy milk", "description": nil, "completed": true}, rec)

	_, err = testItems.Normalize(Record{"title": nil})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = testItems.Normalize(Record{"title": 5})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestSchema_CheckPatch(t *testing.T) {
	assert.NoError(t, testItems.CheckPatch(Record{}))
	assert.NoError(t, testItems.CheckPatch(Record{"description": nil}))
	assert.ErrorIs(t, testItems.CheckPatch(Record{"completed": nil}), ErrInvalidRecord)
	assert.ErrorIs(t, testItems.CheckPatch(Record{"id": int64(1)}), ErrInvalidRecord)
}

func TestQueries_SQLite(t *testing.T) {
	q := newQueries(SQLite, testItems)

	assert.Equal(t, "INSERT INTO items (title, description, completed) VALUES (?, ?, ?) RETURNING id", q.insertAuto)
	assert.Equal(t, "SELECT id, title, description, completed FROM items ORDER BY id", q.selectAll)

	query, args := q.update(Record{"title": "x", "completed": true})
	assert.Equal(t, "UPDATE items SET title = ?, completed = ? WHERE id = ? RETURNING title, description, completed", query)
	assert.Equal(t, []any{"x", true}, args)
}

func TestKeys(t *testing.T) {
	n, err := parseKey[int64]("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = parseKey[int64]("abc")
	assert.Error(t, err)

	s, err := parseKey[string]("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	assert.Equal(t, "42", formatKey(int64(42)))

	_, ok := keyFromSeq[string](1)
	assert.False(t, ok)
}
