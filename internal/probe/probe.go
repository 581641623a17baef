// Package probe периодически проверяет хранилище и обновляет метрики.
//
// Задача запускается robfig/cron по расписанию APP_PROBE_SCHEDULE:
// пингует базу, выставляет modulo_database_up и для каждого ресурса
// записывает число живых записей в modulo_live_entities.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shaiso/Modulo/internal/telemetry"
)

// defaultTimeout — дедлайн одного прогона.
const defaultTimeout = 10 * time.Second

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Counter считает живые записи ресурса.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Probe — периодическая проверка хранилища.
type Probe struct {
	db       Pinger
	counters map[string]Counter
	logger   *slog.Logger
	timeout  time.Duration
	cron     *cron.Cron
}

// Config — конфигурация Probe.
type Config struct {
	DB       Pinger
	Counters map[string]Counter // ключ — имя ресурса
	Logger   *slog.Logger
	Timeout  time.Duration // дедлайн прогона (default: 10s)
}

// New создаёт Probe.
func New(cfg Config) *Probe {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "probe")

	return &Probe{
		db:       cfg.DB,
		counters: cfg.Counters,
		logger:   logger,
		timeout:  timeout,
		cron: cron.New(
			cron.WithLogger(cronLogger{logger}),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger})),
		),
	}
}

// RunOnce выполняет один прогон. Ошибки не возвращаются: они
// отражаются в метриках и логе.
func (p *Probe) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.db.Ping(ctx); err != nil {
		telemetry.DatabaseUp.Set(0)
		p.logger.Warn("database ping failed", "error", err)
		return
	}
	telemetry.DatabaseUp.Set(1)

	resources := make([]string, 0, len(p.counters))
	for name := range p.counters {
		resources = append(resources, name)
	}
	slices.Sort(resources)

	for _, name := range resources {
		n, err := p.counters[name].Count(ctx)
		if err != nil {
			p.logger.Warn("count live entities failed", "resource", name, "error", err)
			continue
		}
		telemetry.LiveEntities.WithLabelValues(name).Set(float64(n))
	}

	p.logger.Debug("probe completed", "resources", len(resources))
}

// Start планирует RunOnce по cron-расписанию (стандартный формат или
// дескриптор вида "@every 30s") и запускает планировщик.
func (p *Probe) Start(schedule string) error {
	_, err := p.cron.AddFunc(schedule, func() {
		p.RunOnce(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule probe %q: %w", schedule, err)
	}

	p.cron.Start()
	p.logger.Info("probe started", "schedule", schedule)
	return nil
}

// Stop останавливает планировщик и ждёт завершения текущего прогона
// или отмены ctx.
func (p *Probe) Stop(ctx context.Context) error {
	select {
	case <-p.cron.Stop().Done():
		p.logger.Info("probe stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger передаёт сообщения cron в slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
