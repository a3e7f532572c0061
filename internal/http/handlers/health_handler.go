package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/videocrew-backend/internal/db"
	"github.com/ignatzorin/videocrew-backend/internal/logger"
)

// HealthHandler предоставляет endpoint для проверки здоровья сервиса.
type HealthHandler struct {
	database db.Pinger
	now      func() time.Time
}

// NewHealthHandler создаёт новый health handler.
func NewHealthHandler(database db.Pinger) *HealthHandler {
	return &HealthHandler{database: database, now: time.Now}
}

// HealthResponse представляет ответ health check.
type HealthResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// Health обрабатывает GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	checks := make(map[string]string)
	healthy := true

	// Проверка подключения к БД
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.database.Ping(ctx); err != nil {
		logger.Log.WithError(err).Warn("health: база данных недоступна")
		checks["database"] = "unhealthy"
		healthy = false
	} else {
		checks["database"] = "healthy"
	}

	statusCode := http.StatusOK
	message := "Video Crew API is running"
	if !healthy {
		statusCode = http.StatusServiceUnavailable
		message = "Video Crew API is degraded"
	}

	c.JSON(statusCode, HealthResponse{
		Success:   healthy,
		Message:   message,
		Timestamp: h.now().UTC(),
		Checks:    checks,
	})
}
