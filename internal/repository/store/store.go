package store

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	"github.com/ignatzorin/videocrew-backend/internal/config"
	"github.com/ignatzorin/videocrew-backend/internal/db"
	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/repository/mongodb"
	"github.com/ignatzorin/videocrew-backend/internal/repository/postgres"
	"github.com/ignatzorin/videocrew-backend/internal/service"
	"github.com/ignatzorin/videocrew-backend/migrations"
)

// Store объединяет репозитории выбранного хранилища и проверку его доступности.
type Store struct {
	Driver    string
	Admins    service.AdminUserRepository
	Portfolio service.PortfolioRepository
	Contacts  service.ContactRepository
	Media     service.MediaRepository
	Pinger    db.Pinger

	close func(ctx context.Context) error
}

// Open подключается к хранилищу из конфигурации: MongoDB (индексы создаются при
// старте) или PostgreSQL (миграции применяются при старте).
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg)
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("store: неизвестный DB_DRIVER %q", cfg.DBDriver)
	}
}

// Close закрывает соединение с хранилищем.
func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

func openMongo(ctx context.Context, cfg *config.Config) (*Store, error) {
	client, database, err := db.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	if err := mongodb.EnsureIndexes(ctx, database); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Log.WithField("database", cfg.MongoDatabase).Info("store: подключено к MongoDB")

	return &Store{
		Driver:    config.DriverMongo,
		Admins:    mongodb.NewAdminUserRepository(database),
		Portfolio: mongodb.NewPortfolioRepository(database),
		Contacts:  mongodb.NewContactRepository(database),
		Media:     mongodb.NewMediaRepository(database),
		Pinger:    db.MongoPinger(client),
		close:     client.Disconnect,
	}, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Store, error) {
	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if err := db.RunMigrations(ctx, conn, migrationSource(cfg.MigrationsPath)); err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Log.Info("store: подключено к PostgreSQL")

	return &Store{
		Driver:    config.DriverPostgres,
		Admins:    postgres.NewAdminUserRepository(conn),
		Portfolio: postgres.NewPortfolioRepository(conn),
		Contacts:  postgres.NewContactRepository(conn),
		Media:     postgres.NewMediaRepository(conn),
		Pinger:    db.PostgresPinger(conn),
		close: func(context.Context) error {
			return conn.Close()
		},
	}, nil
}

// migrationSource возвращает каталог MIGRATIONS_PATH или встроенные миграции.
func migrationSource(path string) fs.FS {
	if path == "" {
		return migrations.FS
	}
	return os.DirFS(path)
}
