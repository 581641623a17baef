package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/Modulo/internal/domain"
)

const (
	contactTable   = "contacts"
	contactColumns = "id, phone, name, created_at, updated_at, deleted_at"
)

// ContactRepo — репозиторий contacts в PostgreSQL.
type ContactRepo struct {
	pool *pgxpool.Pool
}

// NewContactRepo создаёт новый ContactRepo.
func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

// Create сохраняет новый контакт.
func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	query := `
		INSERT INTO contacts (id, phone, name, created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		c.ID,
		c.Phone,
		c.Name,
		c.CreatedAt,
		c.UpdatedAt,
		c.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert contact: %w", err)
	}
	return nil
}

// GetByID возвращает живой контакт по ID.
func (r *ContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	return getLive(ctx, r.pool, contactTable, contactColumns, id, false, scanContact)
}

// List возвращает страницу живых контактов и их общее число.
func (r *ContactRepo) List(ctx context.Context, offset, limit int) ([]domain.Contact, int, error) {
	var (
		items []domain.Contact
		total int
	)

	err := pgx.BeginTxFunc(ctx, r.pool, readOnly, func(tx pgx.Tx) error {
		var err error
		if items, err = listLive(ctx, tx, contactTable, contactColumns, offset, limit, scanContact); err != nil {
			return err
		}
		total, err = countLive(ctx, tx, contactTable)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Count возвращает число живых контактов.
func (r *ContactRepo) Count(ctx context.Context) (int, error) {
	return countLive(ctx, r.pool, contactTable)
}

// SoftDelete помечает живой контакт удалённым и возвращает его.
func (r *ContactRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Contact, error) {
	var contact *domain.Contact

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		c, err := getLive(ctx, tx, contactTable, contactColumns, id, true, scanContact)
		if err != nil {
			return err
		}
		if err := markDeleted(ctx, tx, contactTable, id, at); err != nil {
			return err
		}
		c.MarkDeleted(at)
		contact = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contact, nil
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(
		&c.ID,
		&c.Phone,
		&c.Name,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
