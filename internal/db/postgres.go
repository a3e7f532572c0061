package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/ignatzorin/videocrew-backend/internal/logger"
)

// migrationLockKey ключ advisory-блокировки, под которой применяются миграции.
const migrationLockKey int64 = 0x766964656f

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// NewPostgres создаёт подключение к PostgreSQL с заданным DSN.
func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: не удалось подключиться: %w", err)
	}

	// Сайт студии нагружен слабо, большой пул не нужен.
	conn.SetMaxOpenConns(20)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	return conn, nil
}

// RunMigrations применяет *.sql из fsys, которых ещё нет в schema_migrations.
// Экземпляры, стартующие одновременно, ждут друг друга на advisory-блокировке.
func RunMigrations(ctx context.Context, db *sqlx.DB, fsys fs.FS) error {
	names, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("postgres: список миграций: %w", err)
	}
	sort.Strings(names)

	// Блокировка принадлежит сессии, поэтому всё выполняется на одном соединении.
	conn, err := db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("postgres: соединение для миграций: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
		return fmt.Errorf("postgres: блокировка миграций: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationLockKey); err != nil {
			logger.Log.WithError(err).Warn("postgres: не удалось снять блокировку миграций")
		}
	}()

	if _, err := conn.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("postgres: таблица миграций: %w", err)
	}

	var appliedNames []string
	if err := conn.SelectContext(ctx, &appliedNames, `SELECT name FROM schema_migrations`); err != nil {
		return fmt.Errorf("postgres: выполненные миграции: %w", err)
	}
	applied := make(map[string]bool, len(appliedNames))
	for _, name := range appliedNames {
		applied[name] = true
	}

	for _, name := range names {
		if applied[name] {
			continue
		}
		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("postgres: чтение миграции %s: %w", name, err)
		}

		logger.Log.WithField("migration", name).Info("postgres: применяем миграцию")
		if err := applyMigration(ctx, conn, name, string(body)); err != nil {
			return err
		}
	}

	return nil
}

// applyMigration выполняет миграцию и отмечает её в одной транзакции.
func applyMigration(ctx context.Context, conn *sqlx.Conn, name, body string) error {
	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: транзакция миграции %s: %w", name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, body); err != nil {
		return fmt.Errorf("postgres: миграция %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, name); err != nil {
		return fmt.Errorf("postgres: отметка миграции %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: фиксация миграции %s: %w", name, err)
	}
	return nil
}

// PostgresPinger проверяет доступность PostgreSQL.
func PostgresPinger(conn *sqlx.DB) Pinger {
	return PingFunc(conn.PingContext)
}
