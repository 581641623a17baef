package mq

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityEvent_RoutingKey(t *testing.T) {
	tests := []struct {
		resource, action string
		want             RoutingKey
	}{
		{"echo", ActionCreated, "echo.created"},
		{"echo", ActionDeleted, "echo.deleted"},
		{"contact", ActionCreated, "contact.created"},
		{"contact", ActionDeleted, "contact.deleted"},
	}

	for _, tt := range tests {
		ev := EntityEvent{Resource: tt.resource, Action: tt.action}
		assert.Equal(t, tt.want, ev.RoutingKey())
	}
}

func TestNewMessage_JSONShape(t *testing.T) {
	id := uuid.New()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	msg := NewMessage(EntityEvent{
		Resource:   "echo",
		Action:     ActionCreated,
		EntityID:   id,
		OccurredAt: at,
	})

	assert.Equal(t, "echo.created", msg.Type)
	_, err := uuid.Parse(msg.ID)
	require.NoError(t, err)

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.Contains(t, raw, "id")
	assert.Contains(t, raw, "timestamp")
	assert.Equal(t, "echo.created", raw["type"])

	payload, ok := raw["payload"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "echo", payload["resource"])
	assert.Equal(t, id.String(), payload["entity_id"])
	assert.Equal(t, "2024-05-01T12:00:00Z", payload["occurred_at"])
	assert.NotContains(t, payload, "request_id")
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.PublishEntityEvent(context.Background(), EntityEvent{Resource: "echo", Action: ActionCreated}))
}
