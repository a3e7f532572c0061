package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/videocrew-backend/internal/http/handlers/common"
	"github.com/ignatzorin/videocrew-backend/internal/http/response"
	"github.com/ignatzorin/videocrew-backend/internal/metrics"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
	"github.com/ignatzorin/videocrew-backend/internal/service"
)

// AuthHandler предоставляет HTTP слой для входа администратора.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler создаёт хэндлер.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// loginResponse ответ на успешный вход: токен и пользователь лежат рядом с success.
type loginResponse struct {
	Success bool                   `json:"success"`
	Token   string                 `json:"token"`
	User    models.AdminUserPublic `json:"user"`
}

// Login обрабатывает POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	// Некорректное тело трактуется как отсутствие учётных данных.
	if err := common.BindJSON(c, &req); err != nil {
		metrics.RecordLogin("rejected")
		_ = c.Error(apperror.ErrCredentialsMissing)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.RecordLogin(loginOutcome(err))
		_ = c.Error(err)
		return
	}

	metrics.RecordLogin("success")
	c.JSON(http.StatusOK, loginResponse{
		Success: true,
		Token:   result.Token,
		User:    result.User,
	})
}

// Me обрабатывает GET /api/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	admin, err := common.CurrentAdmin(c)
	if err != nil {
		response.Unauthorized(c, apperror.MsgInvalidToken)
		return
	}

	response.Success(c, admin.Public())
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, apperror.ErrCredentialsMissing):
		return "rejected"
	default:
		return "error"
	}
}
