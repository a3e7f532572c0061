package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/ignatzorin/videocrew-backend/internal/config"
	"github.com/ignatzorin/videocrew-backend/internal/http/handlers"
	"github.com/ignatzorin/videocrew-backend/internal/http/middleware"
	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/metrics"
)

// Handlers набор HTTP обработчиков приложения.
// Seed подключается только в development и может быть nil.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Portfolio *handlers.PortfolioHandler
	Contact   *handlers.ContactHandler
	Media     *handlers.MediaHandler
	Health    *handlers.HealthHandler
	WS        *handlers.WSHandler
	Seed      *handlers.SeedHandler
}

func SetupRouter(
	cfg *config.Config,
	h Handlers,
	authenticator middleware.Authenticator,
	limiterStore limiter.Store,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// ClientIP берёт X-Forwarded-For только от перечисленных прокси.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Log.Errorf("router: некорректный TRUSTED_PROXIES, доверенных прокси нет: %v", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.NoRoute(middleware.NoRoute)

	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.StaticFS(cfg.UploadsMountPath, http.Dir(cfg.UploadDir))

	auth := middleware.AuthMiddleware(authenticator)
	validID := middleware.ObjectIDValidator("id")

	api := r.Group("/api")

	if h.Seed != nil && cfg.IsDevelopment() {
		api.POST("/seed", h.Seed.Seed)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login",
			middleware.RateLimitMiddleware(limiterStore, "login", cfg.RateLimitLimit, cfg.RateLimitPeriod),
			h.Auth.Login,
		)
		authGroup.GET("/me", auth, h.Auth.Me)
	}

	portfolio := api.Group("/portfolio")
	{
		portfolio.GET("", h.Portfolio.List)
		portfolio.GET("/:id", h.Portfolio.Get)
		portfolio.POST("", auth, h.Portfolio.Create)
		portfolio.PUT("/reorder/positions", auth, h.Portfolio.Reorder)
		portfolio.PUT("/:id", auth, validID, h.Portfolio.Update)
		portfolio.DELETE("/:id", auth, validID, h.Portfolio.Delete)
	}

	contact := api.Group("/contact")
	{
		contact.POST("",
			middleware.RateLimitMiddleware(limiterStore, "contact", cfg.RateLimitLimit, cfg.RateLimitPeriod),
			h.Contact.Submit,
		)
		contact.GET("", auth, h.Contact.List)
		contact.GET("/:id", auth, validID, h.Contact.Get)
		contact.PUT("/:id", auth, validID, h.Contact.Update)
	}

	upload := api.Group("/upload", auth)
	{
		upload.POST("/image", h.Media.UploadImage)
		upload.POST("/video", h.Media.UploadVideo)
		upload.GET("", h.Media.List)
		upload.DELETE("/:id", validID, h.Media.Delete)
	}
	api.GET("/media", auth, h.Media.List)

	api.GET("/ws", h.WS.Handle)

	return r
}
