package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"dentalcare-be/internal/model"
	"dentalcare-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// fanoutChannel carries {target_user_id, message} envelopes between
// instances. "*" targets every connected client.
const fanoutChannel = "ws_fanout"

type Hub struct {
	// Registered clients map: UserID -> list of clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fan-out. Nil means single-instance.
	rdb *redis.Client

	// instanceID tags published fan-out payloads. The subscriber skips its
	// own payloads since local clients were already served directly.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.UserID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.UserID]) == 0 {
					delete(h.clients, client.UserID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
				}
			}
			h.mu.Unlock()
		}
	}
}

func envelope(notification model.Notification) []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "notification",
		"data": notification,
	})
	return data
}

func (h *Hub) sendLocal(clients []*Client, data []byte) {
	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer. Drop the connection rather than block the hub.
			// Unregister asynchronously since the caller may hold the read
			// lock; Run closes the Send channel on unregister.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

// Broadcast sends a notification to ALL connected clients, on every instance.
func (h *Hub) Broadcast(notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	for _, clients := range h.clients {
		h.sendLocal(clients, data)
	}
	h.mu.RUnlock()

	h.publishFanout("*", data)
}

// Send delivers a notification to every device the user has connected.
// Implements service.NotificationDelivery.
func (h *Hub) Send(userID uuid.UUID, notification model.Notification) {
	data := envelope(notification)

	h.mu.RLock()
	clients, localFound := h.clients[userID]
	h.mu.RUnlock()

	if localFound {
		h.sendLocal(clients, data)
	}

	// Other instances may hold more of the user's devices.
	h.publishFanout(userID.String(), data)
}

func (h *Hub) publishFanout(target string, data []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"origin":         h.instanceID,
		"target_user_id": target,
		"message":        json.RawMessage(data),
	})
	if err := h.rdb.Publish(context.Background(), fanoutChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis fan-out publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, fanoutChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.handleFanout([]byte(msg.Payload))
	}
}

func (h *Hub) handleFanout(raw []byte) {
	var payload struct {
		Origin       string          `json:"origin"`
		TargetUserID string          `json:"target_user_id"`
		Message      json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("Hub", "Malformed fan-out payload", map[string]interface{}{"error": err.Error()})
		return
	}

	// Our own publishes already reached local clients via sendLocal.
	if payload.Origin == h.instanceID {
		return
	}

	if payload.TargetUserID == "*" {
		h.mu.RLock()
		for _, clients := range h.clients {
			h.sendLocal(clients, payload.Message)
		}
		h.mu.RUnlock()
		return
	}

	uid, err := uuid.Parse(payload.TargetUserID)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients, ok := h.clients[uid]
	h.mu.RUnlock()
	if ok {
		h.sendLocal(clients, payload.Message)
	}
}
