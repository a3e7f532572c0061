package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/videocrew-backend/internal/http/handlers/common"
	"github.com/ignatzorin/videocrew-backend/internal/http/response"
	"github.com/ignatzorin/videocrew-backend/internal/metrics"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/service"
)

// ContactHandler обслуживает заявки с формы обратной связи.
type ContactHandler struct {
	service *service.ContactService
}

// NewContactHandler создаёт новый хэндлер.
func NewContactHandler(service *service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit обрабатывает POST /api/contact.
// Статус и заметки администратора из запроса игнорируются.
func (h *ContactHandler) Submit(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := common.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	inquiry, err := h.service.Submit(c.Request.Context(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	metrics.RecordContactInquiry()
	response.Created(c, "Contact inquiry submitted successfully", inquiry)
}

// List обрабатывает GET /api/contact.
func (h *ContactHandler) List(c *gin.Context) {
	inquiries, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, inquiries)
}

// Get обрабатывает GET /api/contact/:id.
func (h *ContactHandler) Get(c *gin.Context) {
	inquiry, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, inquiry)
}

// Update обрабатывает PUT /api/contact/:id. Меняются только status и admin_notes.
func (h *ContactHandler) Update(c *gin.Context) {
	var req struct {
		Status     *string `json:"status"`
		AdminNotes *string `json:"admin_notes"`
	}
	if err := common.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	inquiry, err := h.service.Update(c.Request.Context(), c.Param("id"), models.ContactPatch{
		Status:     req.Status,
		AdminNotes: req.AdminNotes,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.SuccessWithMessage(c, "Contact inquiry updated successfully", inquiry)
}
