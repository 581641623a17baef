// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go         — Handler с зависимостями (сервисы, pinger, logger)
//   - routes.go          — регистрация маршрутов и fallback 404/405
//   - middleware.go      — request id, логирование, метрики, recovery, bearer
//   - response.go        — конверты ответов и обработка ошибок
//   - dto.go             — представления сущностей в JSON
//   - echo_handler.go    — обработчики /api/echo
//   - contact_handler.go — обработчики /api/progas/contacts
//   - health_handler.go  — / и /health
//
// Любой ответ, включая ошибки и панику, — конверт из пакета envelope.
package api
