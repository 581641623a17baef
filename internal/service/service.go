// Package service — прикладной слой ресурсов Echo и Contact.
//
// Сервис проверяет вход, вычисляет производные поля, ставит дедлайн на
// каждый вызов хранилища и переводит ошибки хранилища в apperr.
// После зафиксированных create/delete публикует событие; ошибка
// публикации логируется и считается, но запрос не роняет.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Modulo/internal/apperr"
	"github.com/shaiso/Modulo/internal/mq"
	"github.com/shaiso/Modulo/internal/repo"
	"github.com/shaiso/Modulo/internal/telemetry"
)

// EventPublisher публикует события жизненного цикла.
type EventPublisher interface {
	PublishEntityEvent(ctx context.Context, ev mq.EntityEvent) error
}

// Options — общие зависимости сервисов.
type Options struct {
	// QueryTimeout — дедлайн на один вызов хранилища. 0 — без дедлайна.
	QueryTimeout time.Duration

	// Publisher — по умолчанию mq.NopPublisher.
	Publisher EventPublisher

	// Now — источник времени. По умолчанию time.Now.
	Now func() time.Time
}

type base struct {
	resource     string
	notFoundMsg  string
	queryTimeout time.Duration
	publisher    EventPublisher
	now          func() time.Time
}

func newBase(resource, notFoundMsg string, opts Options) base {
	b := base{
		resource:     resource,
		notFoundMsg:  notFoundMsg,
		queryTimeout: opts.QueryTimeout,
		publisher:    opts.Publisher,
		now:          opts.Now,
	}
	if b.publisher == nil {
		b.publisher = mq.NopPublisher{}
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

// timestamp — текущее время в UTC с точностью хранилища (микросекунды).
func (b *base) timestamp() time.Time {
	return b.now().UTC().Truncate(time.Microsecond)
}

func (b *base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, b.queryTimeout)
}

// storeError переводит ошибку хранилища в apperr.
func (b *base) storeError(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(b.notFoundMsg)
	}
	return apperr.Internal(err)
}

// publish отправляет событие. Ошибка не возвращается: запись уже зафиксирована.
func (b *base) publish(ctx context.Context, action string, id uuid.UUID, at time.Time) {
	ev := mq.EntityEvent{
		Resource:   b.resource,
		Action:     action,
		EntityID:   id,
		OccurredAt: at,
		RequestID:  telemetry.RequestID(ctx),
	}

	if err := b.publisher.PublishEntityEvent(ctx, ev); err != nil {
		telemetry.EventPublishFailures.Inc()
		telemetry.FromContext(ctx).Error("failed to publish event",
			"routing_key", ev.RoutingKey(),
			"entity_id", id,
			"error", err,
		)
	}
}

func (b *base) logger(ctx context.Context, id uuid.UUID) *slog.Logger {
	return telemetry.WithEntityID(telemetry.FromContext(ctx), b.resource, id.String())
}
