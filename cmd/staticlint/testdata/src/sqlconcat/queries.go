package sqlconcat

import (
	"context"
	"database/sql"
	"fmt"
)

const selectByID = "SELECT title FROM items WHERE id = $1"

func queries(ctx context.Context, db *sql.DB, table, id string) {
	db.QueryRowContext(ctx, selectByID, id)
	db.QueryRowContext(ctx, "SELECT title FROM "+"items WHERE id = $1", id)

	db.QueryRowContext(ctx, "SELECT title FROM "+table+" WHERE id = $1", id) // want "SQL passed to QueryRowContext is built dynamically"
	db.ExecContext(ctx, fmt.Sprintf("DELETE FROM items WHERE id = %s", id))   // want "SQL passed to ExecContext is built dynamically"
	db.Query(("SELECT * FROM " + table))                                     // want "SQL passed to Query is built dynamically"

	query := "SELECT title FROM " + table
	db.Query(query)
}
