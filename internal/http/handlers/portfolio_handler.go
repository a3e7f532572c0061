package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/videocrew-backend/internal/http/handlers/common"
	"github.com/ignatzorin/videocrew-backend/internal/http/response"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/service"
)

// PortfolioHandler обслуживает работы портфолио.
type PortfolioHandler struct {
	service *service.PortfolioService
}

// NewPortfolioHandler создаёт новый хэндлер.
func NewPortfolioHandler(service *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

type portfolioRequest struct {
	Title        *string                   `json:"title"`
	Category     *string                   `json:"category"`
	Client       *string                   `json:"client"`
	Description  *string                   `json:"description"`
	ThumbnailURL *string                   `json:"thumbnail_url"`
	VideoURL     *string                   `json:"video_url"`
	Featured     *bool                     `json:"featured"`
	DisplayOrder *int                      `json:"display_order"`
	Metadata     *models.PortfolioMetadata `json:"metadata"`
}

func (r portfolioRequest) createInput() service.CreatePortfolioInput {
	return service.CreatePortfolioInput{
		Title:        deref(r.Title),
		Category:     deref(r.Category),
		Client:       deref(r.Client),
		Description:  deref(r.Description),
		ThumbnailURL: deref(r.ThumbnailURL),
		VideoURL:     deref(r.VideoURL),
		Featured:     r.Featured,
		DisplayOrder: r.DisplayOrder,
		Metadata:     r.Metadata,
	}
}

func (r portfolioRequest) patch() models.PortfolioPatch {
	return models.PortfolioPatch{
		Title:        r.Title,
		Category:     r.Category,
		Client:       r.Client,
		Description:  r.Description,
		ThumbnailURL: r.ThumbnailURL,
		VideoURL:     r.VideoURL,
		Featured:     r.Featured,
		DisplayOrder: r.DisplayOrder,
		Metadata:     r.Metadata,
	}
}

// List обрабатывает GET /api/portfolio.
func (h *PortfolioHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, items)
}

// Get обрабатывает GET /api/portfolio/:id.
func (h *PortfolioHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, item)
}

// Create обрабатывает POST /api/portfolio.
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req portfolioRequest
	if err := common.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req.createInput())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, "Portfolio item created successfully", item)
}

// Update обрабатывает PUT /api/portfolio/:id.
func (h *PortfolioHandler) Update(c *gin.Context) {
	var req portfolioRequest
	if err := common.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.SuccessWithMessage(c, "Portfolio item updated successfully", item)
}

// Delete обрабатывает DELETE /api/portfolio/:id.
func (h *PortfolioHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, "Portfolio item deleted successfully")
}

// Reorder обрабатывает PUT /api/portfolio/reorder/positions.
func (h *PortfolioHandler) Reorder(c *gin.Context) {
	var req struct {
		Order []string `json:"order"`
	}
	if err := common.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.Reorder(c.Request.Context(), req.Order); err != nil {
		_ = c.Error(err)
		return
	}
	response.Message(c, "Portfolio items reordered successfully")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
