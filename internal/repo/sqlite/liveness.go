package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/shaiso/Modulo/internal/repo"
)

// listLive выбирает страницу живых строк и их общее число в одной транзакции.
// Оба запроса используют один и тот же scope live.
func listLive[R any](ctx context.Context, db *gorm.DB, offset, limit int) ([]R, int, error) {
	var (
		rows  []R
		total int64
	)

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Scopes(live).
			Order("created_at ASC, id ASC").
			Offset(offset).
			Limit(limit).
			Find(&rows).Error
		if err != nil {
			return errors.WithStack(err)
		}

		if err := tx.Model(new(R)).Scopes(live).Count(&total).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return rows, int(total), nil
}

// countLive считает живые строки.
func countLive[R any](ctx context.Context, db *gorm.DB) (int, error) {
	var total int64
	if err := db.WithContext(ctx).Model(new(R)).Scopes(live).Count(&total).Error; err != nil {
		return 0, errors.WithStack(err)
	}
	return int(total), nil
}

// getLive выбирает живую строку по ID.
func getLive[R any](ctx context.Context, db *gorm.DB, id uuid.UUID) (*R, error) {
	var row R
	if err := db.WithContext(ctx).Scopes(live).Where("id = ?", id.String()).First(&row).Error; err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

// softDelete выставляет deleted_at и updated_at у живой строки и
// возвращает её обновлённой.
//
// UPDATE содержит предикат live, поэтому из двух конкурентных удалений
// строку затрагивает только одно; второе получает repo.ErrNotFound.
func softDelete[R any](ctx context.Context, db *gorm.DB, id uuid.UUID, at time.Time) (*R, error) {
	var row R

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(live).Where("id = ?", id.String()).First(&row).Error; err != nil {
			return notFound(err)
		}

		res := tx.Model(new(R)).
			Scopes(live).
			Where("id = ?", id.String()).
			Updates(map[string]any{
				"deleted_at": stamp(at),
				"updated_at": stamp(at),
			})
		if res.Error != nil {
			return errors.WithStack(res.Error)
		}
		if res.RowsAffected == 0 {
			return errors.WithStack(repo.ErrNotFound)
		}

		if err := tx.Where("id = ?", id.String()).First(&row).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &row, nil
}
