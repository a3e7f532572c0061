package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/videocrew-backend/internal/http/response"
	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
)

// ObjectIDValidator проверяет, что параметр с указанным именем является валидным идентификатором.
// Использование: router.PUT("/contact/:id", ObjectIDValidator("id"), handler.Update)
func ObjectIDValidator(paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !models.IsValidID(c.Param(paramName)) {
			response.ValidationFailed(c, []apperror.FieldError{{
				Field:   paramName,
				Message: "Valid ID is required",
			}})
			c.Abort()
			return
		}

		c.Next()
	}
}
