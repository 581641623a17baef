package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shaiso/Modulo/internal/domain"
	"github.com/shaiso/Modulo/internal/mq"
	"github.com/shaiso/Modulo/internal/pagination"
	"github.com/shaiso/Modulo/internal/telemetry"
	"github.com/shaiso/Modulo/internal/validation"
)

// ResourceContact — имя ресурса в метриках и событиях.
const ResourceContact = "contact"

// ContactStore — хранилище контактов.
type ContactStore interface {
	Create(ctx context.Context, c *domain.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	List(ctx context.Context, offset, limit int) ([]domain.Contact, int, error)
	Count(ctx context.Context) (int, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Contact, error)
}

// ContactInput — вход для создания контакта.
type ContactInput struct {
	Phone string `json:"phone" validate:"required,max=32,phone"`
	Name  string `json:"name" validate:"required,min=1,max=255"`
}

// ContactService — операции над контактами.
type ContactService struct {
	base
	store ContactStore
}

// NewContactService создаёт ContactService.
func NewContactService(store ContactStore, opts Options) *ContactService {
	return &ContactService{
		base:  newBase(ResourceContact, "Contact not found", opts),
		store: store,
	}
}

// List возвращает страницу живых контактов и их общее число.
func (s *ContactService) List(ctx context.Context, p pagination.Params) ([]domain.Contact, int, error) {
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

// Get возвращает живой контакт по ID.
func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err)
	}
	return c, nil
}

// Create проверяет вход и сохраняет новый контакт.
func (s *ContactService) Create(ctx context.Context, in ContactInput) (*domain.Contact, error) {
	in.Phone = strings.TrimSpace(in.Phone)
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := s.timestamp()
	c := domain.NewContact(domain.NewAudit(now), in.Name, in.Phone)

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.store.Create(storeCtx, c); err != nil {
		return nil, s.storeError(err)
	}

	telemetry.EntitiesCreated.WithLabelValues(ResourceContact).Inc()
	s.logger(ctx, c.ID).Info("contact created")
	s.publish(ctx, mq.ActionCreated, c.ID, now)

	return c, nil
}

// Delete мягко удаляет контакт и возвращает его.
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	now := s.timestamp()

	storeCtx, cancel := s.withTimeout(ctx)
	defer cancel()

	c, err := s.store.SoftDelete(storeCtx, id, now)
	if err != nil {
		return nil, s.storeError(err)
	}

	telemetry.EntitiesSoftDeleted.WithLabelValues(ResourceContact).Inc()
	s.logger(ctx, id).Info("contact deleted")
	s.publish(ctx, mq.ActionDeleted, id, now)

	return c, nil
}

// Count возвращает число живых контактов.
func (s *ContactService) Count(ctx context.Context) (int, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, s.storeError(err)
	}
	return n, nil
}
