package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Modulo/internal/apperr"
	"github.com/shaiso/Modulo/internal/domain"
	"github.com/shaiso/Modulo/internal/mq"
	"github.com/shaiso/Modulo/internal/pagination"
	"github.com/shaiso/Modulo/internal/telemetry"
	"github.com/shaiso/Modulo/internal/validation"
)

// ResourceEcho — имя ресурса в метриках и событиях.
const ResourceEcho = "echo"

// EchoStore — хранилище echo.
type EchoStore interface {
	Create(ctx context.Context, e *domain.Echo) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Echo, error)
	List(ctx context.Context, offset, limit int) ([]domain.Echo, int, error)
	Count(ctx context.Context) (int, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Echo, error)
}

// EchoInput — вход для создания echo.
type EchoInput struct {
	Message  string  `json:"message" validate:"required,min=1,max=1000"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=100"`
}

// ProcessInput — вход для обработки без сохранения.
type ProcessInput struct {
	Message string `json:"message" validate:"required,min=1,max=1000"`
}

// EchoService — операции над echo.
type EchoService struct {
	base
	store EchoStore
}

// NewEchoService создаёт EchoService.
func NewEchoService(store EchoStore, opts Options) *EchoService {
	return &EchoService{
		base:  newBase(ResourceEcho, "Echo not found", opts),
		store: store,
	}
}

// List возвращает страницу живых записей и их общее число.
func (s *EchoService) List(ctx context.Context, p pagination.Params) ([]domain.Echo, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, total, err := s.store.List(ctx, p.Skip(), p.Limit())
	if err != nil {
		return nil, 0, s.storeError(err)
	}
	return items, total, nil
}

// Get возвращает живую запись по ID.
func (s *EchoService) Get(ctx context.Context, id uuid.UUID) (*domain.Echo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err)
	}
	return e, nil
}

// Create проверяет вход и сохраняет новую запись.
// Категория проверяется до обращения к хранилищу.
func (s *EchoService) Create(ctx context.Context, in EchoInput, isProtected bool) (*domain.Echo, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !domain.ValidCategory(in.Category) {
		return nil, apperr.Validation("invalid category", map[string]string{
			"category": "must be one of: " + strings.Join(domain.AllowedCategories, ", "),
		})
	}

	category := in.Category
	if category != nil && *category == "" {
		category = nil
	}

	now := s.timestamp()
	e := domain.NewEcho(domain.NewAudit(now), in.Message, category, isProtected)

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.store.Create(storeCtx, e); err != nil {
		return nil, s.storeError(err)
	}

	telemetry.EntitiesCreated.WithLabelValues(ResourceEcho).Inc()
	s.logger(ctx, e.ID).Info("echo created", "is_protected", isProtected)
	s.publish(ctx, mq.ActionCreated, e.ID, now)

	return e, nil
}

// Delete мягко удаляет запись и возвращает её.
// Повторное удаление возвращает NotFound.
func (s *EchoService) Delete(ctx context.Context, id uuid.UUID) (*domain.Echo, error) {
	now := s.timestamp()

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	e, err := s.store.SoftDelete(storeCtx, id, now)
	if err != nil {
		return nil, s.storeError(err)
	}

	telemetry.EntitiesSoftDeleted.WithLabelValues(ResourceEcho).Inc()
	s.logger(ctx, id).Info("echo deleted")
	s.publish(ctx, mq.ActionDeleted, id, now)

	return e, nil
}

// Count возвращает число живых записей.
func (s *EchoService) Count(ctx context.Context) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, s.storeError(err)
	}
	return n, nil
}

// Process обрабатывает сообщение без сохранения.
func (s *EchoService) Process(in ProcessInput) (domain.ProcessResult, error) {
	if err := validation.Struct(in); err != nil {
		return domain.ProcessResult{}, err
	}
	return domain.Process(in.Message), nil
}
