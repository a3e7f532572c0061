package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/videocrew-backend/internal/config"
	"github.com/ignatzorin/videocrew-backend/internal/goroutine"
	httpHandlers "github.com/ignatzorin/videocrew-backend/internal/http/handlers"
	"github.com/ignatzorin/videocrew-backend/internal/http/middleware"
	httpRouter "github.com/ignatzorin/videocrew-backend/internal/http/router"
	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/repository/store"
	"github.com/ignatzorin/videocrew-backend/internal/service"
	"github.com/ignatzorin/videocrew-backend/internal/storage"
	"github.com/ignatzorin/videocrew-backend/internal/ws"
)

// portfolioListCacheTTL ограничивает устаревание списка, если в базу пишет другой экземпляр.
const portfolioListCacheTTL = 30 * time.Second

// shutdownTimeout ограничивает ожидание активных запросов при остановке.
const shutdownTimeout = 10 * time.Second

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	logger.Init(cfg.LogLevel)
	if cfg.IsDevelopment() {
		logger.SetTextFormatter()
	}

	// Подключение к хранилищу (индексы или миграции выполняются здесь же).
	st, err := store.Open(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("main: ошибка подключения к хранилищу: %v", err)
	}
	defer safeClose(st)

	// Каталоги для загрузок создаются явно при старте.
	mediaStorage := storage.NewMediaStorage(cfg.UploadDir)
	if err := mediaStorage.EnsureDirs(); err != nil {
		logger.Log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	limiterStore, err := middleware.NewLimiterStore(cfg.RedisURL)
	if err != nil {
		logger.Log.Fatalf("main: %v", err)
	}

	// Живая лента администратора.
	hub := ws.NewHub()
	goroutine.SafeGoWithContext(ctx, hub.Run)

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(st.Admins, tokenManager)
	cache := service.NewCacheService(ctx)
	portfolioService := service.NewPortfolioService(st.Portfolio).WithListCache(cache, portfolioListCacheTTL)
	contactService := service.NewContactService(st.Contacts, hub)
	mediaService := service.NewMediaService(st.Media, mediaStorage, service.MediaConfig{
		BaseURL:       cfg.BackendURL,
		MountPath:     cfg.UploadsMountPath,
		MaxImageBytes: cfg.MaxImageUploadMB << 20,
		MaxVideoBytes: cfg.MaxVideoUploadMB << 20,
	}, hub)

	handlers := httpRouter.Handlers{
		Auth:      httpHandlers.NewAuthHandler(authService),
		Portfolio: httpHandlers.NewPortfolioHandler(portfolioService),
		Contact:   httpHandlers.NewContactHandler(contactService),
		Media:     httpHandlers.NewMediaHandler(mediaService),
		Health:    httpHandlers.NewHealthHandler(st.Pinger),
		WS:        httpHandlers.NewWSHandler(hub, authService, cfg.AllowedOrigins),
	}
	if cfg.IsDevelopment() {
		// Картинки примеров лежат в статике фронтенда.
		assetsBaseURL := cfg.BackendURL
		if len(cfg.AllowedOrigins) > 0 {
			assetsBaseURL = cfg.AllowedOrigins[0]
		}
		handlers.Seed = httpHandlers.NewSeedHandler(service.NewSeedService(st.Portfolio, assetsBaseURL).WithCache(cache))
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, handlers, authService, limiterStore)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Log.Errorf("main: не удалось открыть порт %s: %v", cfg.HTTPPort, err)
		return
	}

	logger.Log.WithFields(map[string]interface{}{
		"port":   cfg.HTTPPort,
		"env":    cfg.Env,
		"driver": st.Driver,
	}).Info("main: HTTP сервер запущен")

	// Хранилище закрывается только после того, как сервер дождался активных запросов.
	if err := serve(ctx, server, ln, shutdownTimeout); err != nil {
		logger.Log.Errorf("main: сервер завершился с ошибкой: %v", err)
	}
}

// serve обслуживает ln до отмены ctx, затем останавливает сервер и ждёт
// завершения активных запросов, но не дольше timeout.
func serve(ctx context.Context, server *http.Server, ln net.Listener, timeout time.Duration) error {
	shutdownDone := make(chan struct{})
	goroutine.SafeGo(func() {
		defer close(shutdownDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Errorf("main: ошибка остановки http сервера: %v", err)
		}
	})

	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-shutdownDone
	return nil
}

// safeClose закрывает соединение с хранилищем.
func safeClose(st *store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := st.Close(ctx); err != nil {
		logger.Log.Errorf("main: ошибка закрытия хранилища: %v", err)
	}
}
