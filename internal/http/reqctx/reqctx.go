// Package reqctx описывает значения, которые middleware кладут в gin.Context.
package reqctx

import "github.com/gin-gonic/gin"

// RequestIDKey ключ идентификатора запроса в gin.Context.
const RequestIDKey = "requestID"

// SetRequestID сохраняет идентификатор запроса.
func SetRequestID(c *gin.Context, id string) {
	c.Set(RequestIDKey, id)
}

// RequestID возвращает идентификатор запроса или пустую строку.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
