package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/videocrew-backend/internal/http/response"
	"github.com/ignatzorin/videocrew-backend/internal/service"
)

// SeedHandler заполняет пустое портфолио примерами. Подключается только в development.
type SeedHandler struct {
	seedService *service.SeedService
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seedService: seedService}
}

// Seed обрабатывает POST /api/seed.
func (h *SeedHandler) Seed(c *gin.Context) {
	result, err := h.seedService.SeedSamplePortfolio(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	message := "Sample portfolio items created"
	if result.Skipped {
		message = "Portfolio already has items, nothing to seed"
	}
	response.SuccessWithMessage(c, message, result)
}
