package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound возвращается, если под ключом нет записи.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidRecord возвращается, если запись или патч не соответствует схеме.
	ErrInvalidRecord = errors.New("invalid record")
	// ErrNoAutoKey возвращает InsertAuto для схем, где ключ задаёт вызывающий.
	ErrNoAutoKey = errors.New("schema has no allocated key")
	// ErrUnavailable оборачивает любые сбои нижележащего хранилища.
	ErrUnavailable = errors.New("storage unavailable")
)

// classify сводит ошибки драйверов к ошибкам хранилища.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidRecord) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidRecord, pgErr.Message)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) && liteErr.Code == sqlite3.ErrConstraint {
		return fmt.Errorf("%s: %w: %s", op, ErrInvalidRecord, liteErr.Error())
	}

	return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
}
