// Package sqlite — хранилище на SQLite через gorm.
//
// Используется, когда APP_DB_USE_PGSQL=false. Схема создаётся
// AutoMigrate при открытии. Предикат "живости" тот же, что и в
// PostgreSQL-репозиториях (repo.LiveClause).
package sqlite

import (
	"context"
	"log/slog"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shaiso/Modulo/internal/repo"
)

// Open открывает базу SQLite и применяет схему.
// dsn — путь к файлу или ":memory:".
func Open(dsn string, level slog.Level) (*gorm.DB, error) {
	var logLevel logger.LogLevel
	switch level {
	case slog.LevelDebug:
		logLevel = logger.Info
	case slog.LevelInfo, slog.LevelWarn:
		logLevel = logger.Warn
	default:
		logLevel = logger.Error
	}

	db, err := gorm.Open(gormlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	internalDB, err := db.DB()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Одно соединение: SQLite сериализует запись, а ":memory:" живёт
	// только внутри своего соединения.
	internalDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=wal",
		"PRAGMA foreign_keys=on",
		"PRAGMA busy_timeout=5000",
	} {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, errors.Wrapf(err, "exec %q", pragma)
		}
	}

	if err := db.AutoMigrate(&echoRow{}, &contactRow{}); err != nil {
		return nil, errors.WithStack(err)
	}

	return db, nil
}

// Close закрывает соединение.
func Close(db *gorm.DB) error {
	internalDB, err := db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(internalDB.Close())
}

// Pinger проверяет доступность базы.
type Pinger struct {
	db *gorm.DB
}

// NewPinger создаёт Pinger.
func NewPinger(db *gorm.DB) *Pinger {
	return &Pinger{db: db}
}

// Ping выполняет проверку соединения.
func (p *Pinger) Ping(ctx context.Context) error {
	internalDB, err := p.db.DB()
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(internalDB.PingContext(ctx))
}

// live — scope с предикатом "живости".
func live(db *gorm.DB) *gorm.DB {
	return db.Where(repo.LiveClause)
}

// notFound переводит gorm.ErrRecordNotFound в repo.ErrNotFound.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.WithStack(repo.ErrNotFound)
	}
	return errors.WithStack(err)
}
