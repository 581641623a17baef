package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// LiveClause — предикат "живости". Его применяет каждый запрос на чтение
// и подсчёт, а также UPDATE мягкого удаления.
const LiveClause = "deleted_at IS NULL"

// querier — общий интерфейс pgxpool.Pool и pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// readOnly — уровень изоляции для пары list+count: оба запроса видят
// один и тот же снимок.
var readOnly = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

// countLive считает живые записи таблицы.
func countLive(ctx context.Context, q querier, table string) (int, error) {
	var total int
	query := `SELECT COUNT(*) FROM ` + table + ` WHERE ` + LiveClause
	if err := q.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// listLive выбирает страницу живых записей в детерминированном порядке.
func listLive[T any](
	ctx context.Context,
	q querier,
	table, columns string,
	offset, limit int,
	scan func(pgx.Row) (*T, error),
) ([]T, error) {
	query := `
		SELECT ` + columns + `
		FROM ` + table + `
		WHERE ` + LiveClause + `
		ORDER BY created_at ASC, id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// getLive выбирает живую запись по ID. forUpdate блокирует строку
// до конца транзакции.
func getLive[T any](
	ctx context.Context,
	q querier,
	table, columns string,
	id uuid.UUID,
	forUpdate bool,
	scan func(pgx.Row) (*T, error),
) (*T, error) {
	query := `SELECT ` + columns + ` FROM ` + table + ` WHERE id = $1 AND ` + LiveClause
	if forUpdate {
		query += ` FOR UPDATE`
	}

	item, err := scan(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s by id: %w", table, err)
	}
	return item, nil
}

// markDeleted выставляет deleted_at и updated_at у живой записи.
// Ноль затронутых строк означает, что запись уже удалена.
func markDeleted(ctx context.Context, q querier, table string, id uuid.UUID, at time.Time) error {
	query := `UPDATE ` + table + ` SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND ` + LiveClause
	result, err := q.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", table, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
