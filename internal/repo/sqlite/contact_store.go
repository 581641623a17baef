package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/shaiso/Modulo/internal/domain"
)

// ContactStore — contacts в SQLite.
type ContactStore struct {
	db *gorm.DB
}

// NewContactStore создаёт ContactStore.
func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Create сохраняет новый контакт.
func (s *ContactStore) Create(ctx context.Context, c *domain.Contact) error {
	if err := s.db.WithContext(ctx).Create(fromContact(c)).Error; err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// GetByID возвращает живой контакт по ID.
func (s *ContactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	row, err := getLive[contactRow](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

// List возвращает страницу живых контактов и их общее число.
func (s *ContactStore) List(ctx context.Context, offset, limit int) ([]domain.Contact, int, error) {
	rows, total, err := listLive[contactRow](ctx, s.db, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	items := make([]domain.Contact, 0, len(rows))
	for i := range rows {
		c, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *c)
	}
	return items, total, nil
}

// Count возвращает число живых контактов.
func (s *ContactStore) Count(ctx context.Context) (int, error) {
	return countLive[contactRow](ctx, s.db)
}

// SoftDelete помечает живой контакт удалённым и возвращает его.
func (s *ContactStore) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Contact, error) {
	row, err := softDelete[contactRow](ctx, s.db, id, at)
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}
