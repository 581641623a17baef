// Package telemetry — логи и метрики Modulo.
//
// logging.go настраивает slog (JSON или text, уровень из APP_LOG_LEVEL)
// и хранит в context логгер запроса с request_id. Обработчики и сервисы
// берут его через FromContext.
//
// metrics.go регистрирует счётчики modulo_*: HTTP запросы и их
// длительность, созданные и мягко удалённые сущности, ошибки публикации
// событий, доступность базы и число живых записей. Отдаются на /metrics.
package telemetry
