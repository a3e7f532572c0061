package common

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/videocrew-backend/internal/http/middleware"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
)

var (
	// ErrAdminNotInContext is returned when the auth middleware did not run.
	ErrAdminNotInContext = errors.New("администратор не найден в контексте")

	// ErrInvalidBody возвращается, когда тело запроса не является корректным JSON.
	ErrInvalidBody = apperror.BadRequest("Invalid request body")
)

// CurrentAdmin extracts the authenticated admin from Gin context.
func CurrentAdmin(c *gin.Context) (*models.AdminUser, error) {
	raw, exists := c.Get(middleware.ContextAdminKey)
	if !exists {
		return nil, ErrAdminNotInContext
	}

	admin, ok := raw.(*models.AdminUser)
	if !ok || admin == nil {
		return nil, ErrAdminNotInContext
	}

	return admin, nil
}

// BindJSON binds JSON request body. An empty body binds to the zero value.
func BindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrInvalidBody
	}
	return nil
}
