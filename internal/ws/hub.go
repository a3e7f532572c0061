package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ignatzorin/videocrew-backend/internal/goroutine"
	"github.com/ignatzorin/videocrew-backend/internal/logger"
)

// Hub управляет WebSocket клиентами администраторов.
// Каждое событие рассылается всем подключённым администраторам.
type Hub struct {
	mu         sync.RWMutex
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
}

// Event сообщение живой ленты: в "type" имя события, в "data" полезная нагрузка.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 32),
		done:       make(chan struct{}),
	}
}

// Run запускает главный цикл хаба до отмены контекста.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case payload := <-h.broadcast:
			h.send(payload)
		}
	}
}

// Register добавляет клиента. Возвращает false, если хаб уже остановлен.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish ставит событие в очередь рассылки. Если очередь переполнена,
// событие отбрасывается: лента носит уведомительный характер.
func (h *Hub) Publish(eventType string, data interface{}) {
	raw, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		logger.Log.WithError(err).WithField("event", eventType).Error("ws: не удалось сериализовать событие")
		return
	}

	select {
	case h.broadcast <- raw:
	default:
		logger.Log.WithField("event", eventType).Warn("ws: очередь событий переполнена, событие отброшено")
	}
}

// ClientCount возвращает число подключённых клиентов.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, clients := range h.clients {
		total += len(clients)
	}
	return total
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.adminID]; !ok {
		h.clients[client.adminID] = make(map[*Client]struct{})
	}
	h.clients[client.adminID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.adminID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			close(client.send)
		}
		if len(clients) == 0 {
			delete(h.clients, client.adminID)
		}
	}
}

func (h *Hub) send(payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, clients := range h.clients {
		for client := range clients {
			select {
			case client.send <- payload:
			default:
				// Медленный клиент отключается, чтобы не блокировать рассылку.
				goroutine.SafeGo(client.closeConn)
			}
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for adminID, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
		delete(h.clients, adminID)
	}
}
