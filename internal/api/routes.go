package api

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// fallbackPattern — шаблон, который ловит всё, что не совпало с маршрутами.
const fallbackPattern = "/"

// Routes регистрирует все маршруты и возвращает обработчик с общей
// цепочкой middleware.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.mux = mux

	auth := h.BearerAuth()

	// Service
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Echo
	mux.HandleFunc("GET /api/echo", h.ListEchoes)
	mux.HandleFunc("POST /api/echo", h.CreateEcho)
	mux.Handle("POST /api/echo/protected", auth(http.HandlerFunc(h.CreateProtectedEcho)))
	mux.HandleFunc("POST /api/echo/process", h.ProcessEcho)
	mux.HandleFunc("GET /api/echo/{id}", h.GetEcho)
	mux.Handle("DELETE /api/echo/{id}", auth(http.HandlerFunc(h.DeleteEcho)))

	// Contacts
	mux.HandleFunc("GET /api/progas/contacts", h.ListContacts)
	mux.Handle("POST /api/progas/contacts", auth(http.HandlerFunc(h.CreateContact)))
	mux.HandleFunc("GET /api/progas/contacts/{id}", h.GetContact)
	mux.Handle("DELETE /api/progas/contacts/{id}", auth(http.HandlerFunc(h.DeleteContact)))

	mux.HandleFunc(fallbackPattern, h.fallback)

	chain := Chain(
		RequestContext(h.logger),
		Logging(),
		Metrics(),
		h.Recovery(),
	)

	return chain(mux)
}

// probeMethods — методы, для которых fallback ищет совпадение пути.
var probeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// fallback отвечает конвертом 405, если путь есть с другим методом,
// иначе 404.
func (h *Handler) fallback(w http.ResponseWriter, r *http.Request) {
	var allowed []string
	for _, method := range probeMethods {
		if method == r.Method {
			continue
		}
		probe := r.Clone(r.Context())
		probe.Method = method
		if _, pattern := h.mux.Handler(probe); pattern != "" && pattern != fallbackPattern {
			allowed = append(allowed, method)
		}
	}

	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		Fail(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
		return
	}

	Fail(w, http.StatusNotFound, "Not found", nil)
}
