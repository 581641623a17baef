// Modulo API — HTTP сервис с ресурсами echo и contacts.
//
// Настройки читаются из окружения (префикс APP_) и файла .env.
// Хранилище: SQLite по умолчанию, PostgreSQL при APP_DB_USE_PGSQL=true.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/shaiso/Modulo/internal/api"
	"github.com/shaiso/Modulo/internal/config"
	"github.com/shaiso/Modulo/internal/mq"
	"github.com/shaiso/Modulo/internal/probe"
	"github.com/shaiso/Modulo/internal/repo"
	"github.com/shaiso/Modulo/internal/repo/sqlite"
	"github.com/shaiso/Modulo/internal/service"
	"github.com/shaiso/Modulo/internal/telemetry"
)

// storage — выбранное хранилище со всеми репозиториями.
type storage struct {
	echo     service.EchoStore
	contacts service.ContactStore
	pinger   api.Pinger
	close    func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Инициализируем structured logging
	logger := telemetry.SetupLogger(telemetry.LogOptions{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Debug:  cfg.Debug,
	})
	logger.Info("starting modulo-api", "version", cfg.Version, "storage", cfg.StorageName())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("fatal", "error", err)
		os.Exit(1)
	}

	logger.Info("stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// Подключаемся к базе данных
	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.close(); err != nil {
			logger.Warn("failed to close storage", "error", err)
		}
	}()

	// Публикация событий (опционально)
	var (
		publisher service.EventPublisher = mq.NopPublisher{}
		broker    api.Broker
	)
	if cfg.AMQPURL != "" {
		conn, err := mq.NewConnection(cfg.AMQPURL, logger)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := mq.SetupTopology(ctx, conn); err != nil {
			return err
		}
		publisher = mq.NewPublisher(conn, logger)
		broker = conn
		logger.Info("event publishing enabled", "exchange", mq.ExchangeEvents)
	}

	opts := service.Options{
		QueryTimeout: cfg.DB.QueryTimeout,
		Publisher:    publisher,
	}
	echoSvc := service.NewEchoService(store.echo, opts)
	contactSvc := service.NewContactService(store.contacts, opts)

	// Периодическая проверка хранилища
	pr := probe.New(probe.Config{
		DB: store.pinger,
		Counters: map[string]probe.Counter{
			service.ResourceEcho:    echoSvc,
			service.ResourceContact: contactSvc,
		},
		Logger:  logger,
		Timeout: cfg.DB.QueryTimeout,
	})
	pr.RunOnce(ctx)
	if err := pr.Start(cfg.ProbeSchedule); err != nil {
		return err
	}

	// Создаём API handler
	handler := api.NewHandler(api.Config{
		Echo:        echoSvc,
		Contacts:    contactSvc,
		DB:          store.pinger,
		Broker:      broker,
		Name:        cfg.Name,
		Version:     cfg.Version,
		Storage:     cfg.StorageName(),
		BearerToken: cfg.Security.BearerToken,
		Debug:       cfg.Debug,
		Logger:      logger,
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{api.HeaderRequestID, api.HeaderProcessTime},
		AllowCredentials: true,
	})

	// Создаём HTTP сервер с возможностью graceful shutdown
	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           c.Handler(handler.Routes()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTP.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидаем сигнал завершения или ошибку сервера
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	if err := pr.Stop(shutdownCtx); err != nil {
		logger.Warn("probe stop timed out", "error", err)
	}

	return nil
}

// openStorage подключает PostgreSQL или SQLite и применяет схему.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	if cfg.DB.UsePostgres {
		pool, err := repo.NewPool(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, err
		}
		if err := repo.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("connected to database", "dsn", cfg.RedactedDatabaseURL())

		return &storage{
			echo:     repo.NewEchoRepo(pool),
			contacts: repo.NewContactRepo(pool),
			pinger:   repo.NewPinger(pool),
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	}

	db, err := sqlite.Open(cfg.SQLitePath, telemetry.LogLevel(cfg.Log.Level))
	if err != nil {
		return nil, err
	}
	logger.Info("connected to database", "path", cfg.SQLitePath)

	return &storage{
		echo:     sqlite.NewEchoStore(db),
		contacts: sqlite.NewContactStore(db),
		pinger:   sqlite.NewPinger(db),
		close:    func() error { return sqlite.Close(db) },
	}, nil
}
