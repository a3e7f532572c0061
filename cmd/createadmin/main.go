// Command createadmin создаёт администратора сайта из ADMIN_EMAIL, ADMIN_PASSWORD и ADMIN_NAME.
// Повторный запуск безопасен: существующий администратор не изменяется.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/ignatzorin/videocrew-backend/internal/config"
	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/repository/store"
	"github.com/ignatzorin/videocrew-backend/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Errorf("createadmin: ошибка загрузки конфигурации: %v", err)
		return 1
	}
	logger.Init(cfg.LogLevel)
	logger.SetTextFormatter()

	bootstrap, err := config.LoadAdminBootstrap()
	if err != nil {
		logger.Log.Error(err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Log.Errorf("createadmin: ошибка подключения к хранилищу: %v", err)
		return 1
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			logger.Log.Errorf("createadmin: ошибка закрытия хранилища: %v", err)
		}
	}()

	// Токены здесь не выпускаются, менеджеру достаточно пустого секрета.
	auth := service.NewAuthService(st.Admins, service.NewTokenManager("", cfg.TokenTTL))

	admin, err := auth.CreateAdminUser(ctx, bootstrap.Email, bootstrap.Password, bootstrap.Name)
	if err != nil {
		if errors.Is(err, service.ErrAdminExists) {
			logger.Log.WithField("email", bootstrap.Email).Info("createadmin: администратор уже существует")
			return 0
		}
		logger.Log.Errorf("createadmin: не удалось создать администратора: %v", err)
		return 1
	}

	logger.Log.WithFields(map[string]interface{}{
		"id":    admin.ID,
		"email": admin.Email,
	}).Info("createadmin: администратор создан")
	return 0
}
