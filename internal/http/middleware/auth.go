package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/videocrew-backend/internal/http/response"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
)

// ContextAdminKey ключ gin.Context, под которым лежит *models.AdminUser.
const ContextAdminKey = "admin"

// Authenticator проверяет токен и возвращает администратора.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.AdminUser, error)
}

// BearerToken извлекает токен из заголовка Authorization.
func BearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	return token, token != ""
}

// AuthMiddleware проверяет bearer токен и наличие администратора в хранилище.
// При ошибке следующий обработчик не вызывается.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, apperror.MsgNoTokenProvided)
			return
		}

		admin, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.HTTPStatus >= http.StatusInternalServerError {
				response.Error(c, err)
				c.Abort()
				return
			}
			response.Abort(c, http.StatusUnauthorized, apperror.MsgInvalidToken)
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}
