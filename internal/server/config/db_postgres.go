package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// OpenDB открывает пул соединений с PostgreSQL (драйвер pgx),
// применяет настройки пула и проверяет доступность базы (Ping).
//
// Закрывать *sql.DB должен вызывающий.
func OpenDB(ctx context.Context, cfg DBConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

// RunMigrations применяет миграции golang-migrate из cfg.Path.
//
// Если миграции уже применены, migrate.ErrNoChange ошибкой не считается.
func RunMigrations(db *sql.DB, cfg MigrationsConfig) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	// создаём миграции с выбранным драйвером
	m, err := migrate.NewWithDatabaseInstance(cfg.Path, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrations: %w", err)
	}
	if cfg.LockTimeout > 0 {
		m.LockTimeout = cfg.LockTimeout
	}

	// запускаем миграции
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
