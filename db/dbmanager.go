package db

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type DBManager struct {
	DB *sqlx.DB
}

// NewDBConnection opens the SQLite file at databasePath and brings its schema
// up to date. All callers share one connection.
func NewDBConnection(databasePath string) (*DBManager, error) {
	if strings.TrimSpace(databasePath) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	dbx, err := sqlx.Open("sqlite3", databasePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	dbx.SetMaxOpenConns(1)

	if err := dbx.Ping(); err != nil {
		_ = dbx.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := migrateUp(dbx); err != nil {
		_ = dbx.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &DBManager{
		DB: dbx,
	}, nil
}

func migrateUp(dbx *sqlx.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	driver, err := sqlite3.WithInstance(dbx.DB, &sqlite3.Config{})
	if err != nil {
		return err
	}

	// Closing m would close dbx through the driver, so it is left open.
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

func (dbManager *DBManager) Close() error {
	if dbManager == nil || dbManager.DB == nil {
		return nil
	}
	return dbManager.DB.Close()
}
