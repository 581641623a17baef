package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/shaiso/Modulo/internal/service"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Broker сообщает о состоянии соединения с брокером событий.
type Broker interface {
	IsConnected() bool
}

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	echo     *service.EchoService
	contacts *service.ContactService
	db       Pinger
	broker   Broker

	name    string
	version string
	storage string
	token   string
	debug   bool

	logger  *slog.Logger
	started time.Time
	mux     *http.ServeMux
}

// Config — конфигурация для создания Handler.
type Config struct {
	Echo     *service.EchoService
	Contacts *service.ContactService
	DB       Pinger

	// Broker — nil, если публикация событий выключена.
	Broker Broker

	Name        string
	Version     string
	Storage     string
	BearerToken string
	Debug       bool

	Logger *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		echo:     cfg.Echo,
		contacts: cfg.Contacts,
		db:       cfg.DB,
		broker:   cfg.Broker,
		name:     cfg.Name,
		version:  cfg.Version,
		storage:  cfg.Storage,
		token:    cfg.BearerToken,
		debug:    cfg.Debug,
		logger:   logger,
		started:  time.Now(),
	}
}
