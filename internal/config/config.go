// Package config загружает настройки приложения из окружения.
//
// Все переменные имеют префикс APP_. Перед разбором main подгружает
// файл .env (если он есть). Config создаётся один раз при старте и
// передаётся в компоненты явно.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Prefix — префикс переменных окружения.
const Prefix = "APP_"

// Config — настройки приложения.
type Config struct {
	Name    string `env:"NAME" envDefault:"Modulo"`
	Version string `env:"VERSION" envDefault:"0.1.0"`

	// Debug включает подробные ошибки в ответах и DEBUG-логи.
	Debug bool `env:"DEBUG" envDefault:"false"`

	HTTP     HTTP     `envPrefix:"HTTP_"`
	DB       Database `envPrefix:"DB_"`
	Log      Log      `envPrefix:"LOG_"`
	Security Security

	// SQLitePath — файл SQLite, если DB.UsePostgres=false.
	SQLitePath string `env:"SQLITE_DB_PATH" envDefault:"sqlite3.db"`

	// AllowedOrigins — источники для CORS.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// AMQPURL — адрес RabbitMQ для событий. Пусто — события не публикуются.
	AMQPURL string `env:"AMQP_URL"`

	// ProbeSchedule — cron-расписание проверки хранилища.
	ProbeSchedule string `env:"PROBE_SCHEDULE" envDefault:"@every 30s"`
}

// HTTP — настройки HTTP сервера.
type HTTP struct {
	Address         string        `env:"ADDRESS" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Database — настройки подключения к БД.
type Database struct {
	UsePostgres  bool          `env:"USE_PGSQL" envDefault:"false"`
	Host         string        `env:"HOST" envDefault:"localhost"`
	Port         int           `env:"PORT" envDefault:"5432"`
	Name         string        `env:"NAME" envDefault:"modulo"`
	User         string        `env:"USER" envDefault:"postgres"`
	Password     string        `env:"PASSWORD" envDefault:"postgres"`
	SSLMode      string        `env:"SSLMODE" envDefault:"disable"`
	QueryTimeout time.Duration `env:"QUERY_TIMEOUT" envDefault:"5s"`
}

// Log — настройки логирования.
type Log struct {
	Level  string `env:"LEVEL" envDefault:"INFO"`
	Format string `env:"FORMAT" envDefault:"json"`
}

// Security — статический bearer токен для защищённых endpoints.
type Security struct {
	BearerToken string `env:"BEARER_TOKEN" envDefault:"change-me-in-production"`
}

// Load читает .env из files (или ./.env, если files пуст) и разбирает окружение.
// Отсутствие .env ошибкой не считается.
func Load(files ...string) (*Config, error) {
	// godotenv не перетирает уже выставленные переменные.
	_ = godotenv.Load(files...)

	return Parse()
}

// Parse разбирает окружение без чтения .env.
func Parse() (*Config, error) {
	cfg, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: Prefix,
	})
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.Security.BearerToken == "" {
		return fmt.Errorf("%sBEARER_TOKEN must not be empty", Prefix)
	}
	if c.DB.QueryTimeout <= 0 {
		return fmt.Errorf("%sDB_QUERY_TIMEOUT must be positive", Prefix)
	}
	if _, err := cron.ParseStandard(c.ProbeSchedule); err != nil {
		return fmt.Errorf("%sPROBE_SCHEDULE: %w", Prefix, err)
	}
	return nil
}

// DatabaseURL возвращает DSN для PostgreSQL.
func (c *Config) DatabaseURL() string {
	return c.databaseURL(url.UserPassword(c.DB.User, c.DB.Password))
}

// RedactedDatabaseURL возвращает DSN со скрытым паролем — для логов.
func (c *Config) RedactedDatabaseURL() string {
	return c.databaseURL(url.UserPassword(c.DB.User, "***"))
}

func (c *Config) databaseURL(user *url.Userinfo) string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     user,
		Host:     c.DB.Host + ":" + strconv.Itoa(c.DB.Port),
		Path:     "/" + c.DB.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.DB.SSLMode),
	}
	return u.String()
}

// StorageName — имя используемого хранилища для логов и /health.
func (c *Config) StorageName() string {
	if c.DB.UsePostgres {
		return "postgresql"
	}
	return "sqlite"
}
