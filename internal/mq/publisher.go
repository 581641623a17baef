package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Действия над сущностями.
const (
	ActionCreated = "created"
	ActionDeleted = "deleted"
)

// EntityEvent — факт изменения сущности, уже зафиксированный в хранилище.
type EntityEvent struct {
	Resource   string    `json:"resource"`
	Action     string    `json:"action"`
	EntityID   uuid.UUID `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`

	// RequestID — X-Request-ID запроса, вызвавшего изменение.
	RequestID string `json:"request_id,omitempty"`
}

// RoutingKey возвращает ключ "<resource>.<action>".
func (e EntityEvent) RoutingKey() RoutingKey {
	return RoutingKey(e.Resource + "." + e.Action)
}

// Message — сообщение, которое уходит в брокер.
type Message struct {
	// ID — уникальный идентификатор сообщения.
	ID string `json:"id"`

	// Type совпадает с routing key, например "echo.created".
	Type string `json:"type"`

	// Payload — тело события.
	Payload EntityEvent `json:"payload"`

	// Timestamp — время публикации.
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage оборачивает событие в сообщение.
func NewMessage(ev EntityEvent) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Type:      string(ev.RoutingKey()),
		Payload:   ev,
		Timestamp: time.Now().UTC(),
	}
}

// Publisher публикует события в RabbitMQ.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{
		conn:   conn,
		logger: logger,
	}
}

// PublishEntityEvent публикует событие в ExchangeEvents.
func (p *Publisher) PublishEntityEvent(ctx context.Context, ev EntityEvent) error {
	msg := NewMessage(ev)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	routingKey := ev.RoutingKey()

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(ExchangeEvents),
			string(routingKey),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Timestamp:    msg.Timestamp,
				Type:         msg.Type,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", ExchangeEvents, routingKey, err)
		}

		p.logger.Debug("published event",
			"exchange", ExchangeEvents,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"entity_id", ev.EntityID,
		)

		return nil
	})
}

// NopPublisher ничего не публикует. Используется, когда брокер не настроен.
type NopPublisher struct{}

// PublishEntityEvent ничего не делает.
func (NopPublisher) PublishEntityEvent(context.Context, EntityEvent) error {
	return nil
}
