package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrateDB применяет встроенные миграции одной таблицы. Открывает своё
// соединение, чтобы закрытие мигратора не трогало пул хранилища. У каждой
// таблицы своя таблица истории, поэтому сервисы могут делить одну базу.
func MigrateDB(dialect Dialect, dsn, table string, logger *zap.SugaredLogger) error {
	src, err := fs.Sub(migrationsFS, "migrations/"+dialect.Name+"/"+table)
	if err != nil {
		return fmt.Errorf("no migrations for %s/%s: %w", dialect.Name, table, err)
	}
	source, err := iofs.New(src, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(1)

	historyTable := "schema_migrations_" + table
	var driver database.Driver
	switch dialect.Name {
	case Postgres.Name:
		driver, err = postgres.WithInstance(db, &postgres.Config{MigrationsTable: historyTable})
	case SQLite.Name:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{MigrationsTable: historyTable})
	default:
		err = fmt.Errorf("unsupported dialect %q", dialect.Name)
	}
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect.Name, driver)
	if err != nil {
		driver.Close()
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Infow("Migration executed successfully", "dialect", dialect.Name, "table", table)
	return nil
}
