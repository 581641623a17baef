package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/shaiso/Modulo/internal/domain"
)

// EchoStore — echo_items в SQLite.
type EchoStore struct {
	db *gorm.DB
}

// NewEchoStore создаёт EchoStore.
func NewEchoStore(db *gorm.DB) *EchoStore {
	return &EchoStore{db: db}
}

// Create сохраняет новую запись.
func (s *EchoStore) Create(ctx context.Context, e *domain.Echo) error {
	if err := s.db.WithContext(ctx).Create(fromEcho(e)).Error; err != nil {
		return errors.WithStack(err)
	}
	return nil
}

// GetByID возвращает живую запись по ID.
func (s *EchoStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Echo, error) {
	row, err := getLive[echoRow](ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}

// List возвращает страницу живых записей и их общее число.
func (s *EchoStore) List(ctx context.Context, offset, limit int) ([]domain.Echo, int, error) {
	rows, total, err := listLive[echoRow](ctx, s.db, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	items := make([]domain.Echo, 0, len(rows))
	for i := range rows {
		e, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *e)
	}
	return items, total, nil
}

// Count возвращает число живых записей.
func (s *EchoStore) Count(ctx context.Context) (int, error) {
	return countLive[echoRow](ctx, s.db)
}

// SoftDelete помечает живую запись удалённой и возвращает её.
func (s *EchoStore) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Echo, error) {
	row, err := softDelete[echoRow](ctx, s.db, id, at)
	if err != nil {
		return nil, err
	}
	return row.toDomain()
}
