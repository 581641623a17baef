package api

import (
	"context"
	"net/http"
	"time"
)

// healthTimeout — дедлайн проверки хранилища в /health.
const healthTimeout = 2 * time.Second

// Root возвращает информацию о сервисе.
// GET /
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	Success(w, InfoResponse{
		Message: "Welcome to " + h.name,
		Version: h.version,
		Health:  "/health",
		Metrics: "/metrics",
	}, "")
}

// Health проверяет хранилище и, если события включены, брокер.
// Всегда 200: недоступная зависимость даёт status=warning, а не ошибку.
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status, database := "ok", "connected"

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.logger.Warn("health check: database unavailable", "error", err)
			status, database = "warning", "disconnected"
		}
	}

	var events string
	if h.broker != nil {
		events = "connected"
		if !h.broker.IsConnected() {
			h.logger.Warn("health check: broker unavailable")
			status, events = "warning", "disconnected"
		}
	}

	Success(w, HealthResponse{
		Status:    status,
		Service:   h.name,
		Version:   h.version,
		Database:  database,
		Storage:   h.storage,
		Events:    events,
		Uptime:    time.Since(h.started).Seconds(),
		Timestamp: time.Now().UTC(),
	}, "")
}
