package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/ignatzorin/videocrew-backend/internal/http/middleware"
	"github.com/ignatzorin/videocrew-backend/internal/http/response"
	"github.com/ignatzorin/videocrew-backend/internal/logger"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
	"github.com/ignatzorin/videocrew-backend/internal/ws"
)

// WSHandler отвечает за установку WebSocket соединений живой ленты администратора.
type WSHandler struct {
	hub      *ws.Hub
	auth     middleware.Authenticator
	upgrader websocket.Upgrader
}

// NewWSHandler создаёт новый хэндлер. Подключения принимаются только с разрешённых origins.
func NewWSHandler(hub *ws.Hub, auth middleware.Authenticator, allowedOrigins []string) *WSHandler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = struct{}{}
	}

	return &WSHandler{
		hub:  hub,
		auth: auth,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
	}
}

// Handle обслуживает GET /api/ws?token=...
// Браузер не умеет передавать заголовок Authorization при открытии WebSocket,
// поэтому токен принимается и из query.
func (h *WSHandler) Handle(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		rawToken, _ = middleware.BearerToken(c)
	}
	if rawToken == "" {
		response.Unauthorized(c, apperror.MsgNoTokenProvided)
		return
	}

	admin, err := h.auth.Authenticate(c.Request.Context(), rawToken)
	if err != nil {
		if apperror.IsInternal(err) {
			_ = c.Error(err)
			return
		}
		response.Unauthorized(c, apperror.MsgInvalidToken)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrader уже отправил ответ клиенту.
		logger.Log.WithError(err).Warn("ws: не удалось установить соединение")
		return
	}

	client := ws.NewClient(conn, h.hub, admin.ID)
	if !h.hub.Register(client) {
		_ = conn.Close()
		return
	}

	client.Run(c.Request.Context())
}
