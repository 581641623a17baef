package mq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Exchange — имя обменника.
type Exchange string

// Queue — имя очереди.
type Queue string

// RoutingKey — ключ маршрутизации.
type RoutingKey string

const (
	// ExchangeEvents — topic exchange для событий сущностей.
	ExchangeEvents Exchange = "modulo.events"

	// QueueAudit — очередь аудита, получает все события.
	QueueAudit Queue = "audit.events"

	// RoutingKeyAll — привязка ко всем ключам topic exchange.
	RoutingKeyAll RoutingKey = "#"
)

// SetupTopology объявляет exchange, очередь аудита и привязку.
// Повторный вызов безопасен: объявления в AMQP идемпотентны.
func SetupTopology(ctx context.Context, conn *Connection) error {
	return conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.ExchangeDeclare(
			string(ExchangeEvents), // name
			amqp.ExchangeTopic,     // type
			true,                   // durable
			false,                  // auto-deleted
			false,                  // internal
			false,                  // no-wait
			nil,                    // arguments
		)
		if err != nil {
			return fmt.Errorf("declare exchange %s: %w", ExchangeEvents, err)
		}

		_, err = ch.QueueDeclare(
			string(QueueAudit), // name
			true,               // durable
			false,              // delete when unused
			false,              // exclusive
			false,              // no-wait
			nil,                // arguments
		)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", QueueAudit, err)
		}

		err = ch.QueueBind(
			string(QueueAudit),     // queue name
			string(RoutingKeyAll),  // routing key
			string(ExchangeEvents), // exchange
			false,                  // no-wait
			nil,                    // arguments
		)
		if err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", QueueAudit, ExchangeEvents, err)
		}

		return nil
	})
}

// TopologyInfo возвращает описание топологии для логирования.
func TopologyInfo() string {
	return `
  Modulo RabbitMQ Topology:

    modulo.events (topic)
    └── audit.events [routing: #]
            echo.created, echo.deleted
            contact.created, contact.deleted
  `
}
