package websocket

import (
	"encoding/json"
	"testing"

	"dentalcare-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHub(t *testing.T) *Hub {
	t.Helper()
	return NewHub(nil, logger.NewIsolatedLogger(t.TempDir()+"/ws.log"))
}

func connect(h *Hub, userID uuid.UUID) *Client {
	client := &Client{Hub: h, UserID: userID, Send: make(chan []byte, 4)}
	h.mu.Lock()
	h.clients[userID] = append(h.clients[userID], client)
	h.mu.Unlock()
	return client
}

func fanoutPayload(t *testing.T, origin, target string) []byte {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{
		"origin":         origin,
		"target_user_id": target,
		"message":        json.RawMessage(`{"type":"notification"}`),
	})
	require.NoError(t, err)
	return raw
}

func TestHandleFanoutSkipsOwnPublishes(t *testing.T) {
	h := testHub(t)
	userID := uuid.New()
	client := connect(h, userID)

	h.handleFanout(fanoutPayload(t, h.instanceID, userID.String()))

	assert.Empty(t, client.Send)
}

func TestHandleFanoutDeliversRemotePayloads(t *testing.T) {
	h := testHub(t)
	userID := uuid.New()
	client := connect(h, userID)

	h.handleFanout(fanoutPayload(t, "other-instance", userID.String()))

	require.Len(t, client.Send, 1)
	assert.JSONEq(t, `{"type":"notification"}`, string(<-client.Send))
}

func TestHandleFanoutBroadcastReachesAllLocalClients(t *testing.T) {
	h := testHub(t)
	first := connect(h, uuid.New())
	second := connect(h, uuid.New())

	h.handleFanout(fanoutPayload(t, "other-instance", "*"))

	assert.Len(t, first.Send, 1)
	assert.Len(t, second.Send, 1)
}

func TestHandleFanoutIgnoresUnknownTargets(t *testing.T) {
	h := testHub(t)
	client := connect(h, uuid.New())

	h.handleFanout(fanoutPayload(t, "other-instance", uuid.New().String()))
	h.handleFanout(fanoutPayload(t, "other-instance", "not-a-uuid"))
	h.handleFanout([]byte("not json"))

	assert.Empty(t, client.Send)
}
