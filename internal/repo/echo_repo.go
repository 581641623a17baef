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
	echoTable   = "echo_items"
	echoColumns = "id, message, category, processed_message, is_protected, created_at, updated_at, deleted_at"
)

// EchoRepo — репозиторий echo_items в PostgreSQL.
type EchoRepo struct {
	pool *pgxpool.Pool
}

// NewEchoRepo создаёт новый EchoRepo.
func NewEchoRepo(pool *pgxpool.Pool) *EchoRepo {
	return &EchoRepo{pool: pool}
}

// Create сохраняет новую запись.
func (r *EchoRepo) Create(ctx context.Context, e *domain.Echo) error {
	query := `
		INSERT INTO echo_items (id, message, category, processed_message, is_protected,
		                        created_at, updated_at, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		e.ID,
		e.Message,
		e.Category,
		e.ProcessedMessage,
		e.IsProtected,
		e.CreatedAt,
		e.UpdatedAt,
		e.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert echo: %w", err)
	}
	return nil
}

// GetByID возвращает живую запись по ID.
func (r *EchoRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Echo, error) {
	return getLive(ctx, r.pool, echoTable, echoColumns, id, false, scanEcho)
}

// List возвращает страницу живых записей и их общее число.
// Оба запроса выполняются в одной read-only транзакции.
func (r *EchoRepo) List(ctx context.Context, offset, limit int) ([]domain.Echo, int, error) {
	var (
		items []domain.Echo
		total int
	)

	err := pgx.BeginTxFunc(ctx, r.pool, readOnly, func(tx pgx.Tx) error {
		var err error
		if items, err = listLive(ctx, tx, echoTable, echoColumns, offset, limit, scanEcho); err != nil {
			return err
		}
		total, err = countLive(ctx, tx, echoTable)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Count возвращает число живых записей.
func (r *EchoRepo) Count(ctx context.Context) (int, error) {
	return countLive(ctx, r.pool, echoTable)
}

// SoftDelete помечает живую запись удалённой и возвращает её.
//
// Строка блокируется SELECT ... FOR UPDATE, поэтому из двух
// конкурентных удалений успешно только одно.
func (r *EchoRepo) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (*domain.Echo, error) {
	var echo *domain.Echo

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		e, err := getLive(ctx, tx, echoTable, echoColumns, id, true, scanEcho)
		if err != nil {
			return err
		}
		if err := markDeleted(ctx, tx, echoTable, id, at); err != nil {
			return err
		}
		e.MarkDeleted(at)
		echo = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return echo, nil
}

func scanEcho(row pgx.Row) (*domain.Echo, error) {
	var e domain.Echo
	err := row.Scan(
		&e.ID,
		&e.Message,
		&e.Category,
		&e.ProcessedMessage,
		&e.IsProtected,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
