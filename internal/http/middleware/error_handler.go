package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/videocrew-backend/internal/http/reqctx"
	"github.com/ignatzorin/videocrew-backend/internal/http/response"
	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
)

// ErrorHandler обрабатывает ошибки централизованно.
// Обработчики кладут ошибку в c.Error, здесь она превращается в ответ.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Проверяем, не был ли уже отправлен ответ
		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		response.Error(c, c.Errors.Last().Err)
	}
}

// Recovery перехватывает панику и отвечает 500, не роняя процесс.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.WithFields(logrus.Fields{
					"panic":      fmt.Sprint(rec),
					"path":       c.Request.URL.Path,
					"method":     c.Request.Method,
					"request_id": reqctx.RequestID(c),
				}).Error("panic recovered")

				if !c.Writer.Written() {
					response.Abort(c, http.StatusInternalServerError, apperror.MsgInternal)
					return
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}

// NoRoute отвечает 404 для неизвестных маршрутов.
func NoRoute(c *gin.Context) {
	response.NotFound(c, fmt.Sprintf("Route %s not found", c.Request.URL.Path))
}
