package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/shaiso/Modulo/internal/apperr"
	"github.com/shaiso/Modulo/internal/envelope"
	"github.com/shaiso/Modulo/internal/pagination"
	"github.com/shaiso/Modulo/internal/service"
)

// pathID читает {id} из пути.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("invalid id", err)
	}
	return id, nil
}

// ListEchoes возвращает страницу echo.
// GET /api/echo
func (h *Handler) ListEchoes(w http.ResponseWriter, r *http.Request) {
	p, err := pagination.Parse(r.URL.Query())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	items, total, err := h.echo.List(r.Context(), p)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	List(w, envelope.Map(items, EchoFromDomain), total, p)
}

// GetEcho возвращает echo по ID.
// GET /api/echo/{id}
func (h *Handler) GetEcho(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	e, err := h.echo.Get(r.Context(), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	Success(w, EchoFromDomain(*e), "")
}

// CreateEcho создаёт echo.
// POST /api/echo
func (h *Handler) CreateEcho(w http.ResponseWriter, r *http.Request) {
	h.createEcho(w, r, false, "Echo created successfully")
}

// CreateProtectedEcho создаёт echo с is_protected=true.
// POST /api/echo/protected
func (h *Handler) CreateProtectedEcho(w http.ResponseWriter, r *http.Request) {
	h.createEcho(w, r, true, "Protected echo created successfully")
}

func (h *Handler) createEcho(w http.ResponseWriter, r *http.Request, isProtected bool, message string) {
	var in service.EchoInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.HandleError(w, r, err)
		return
	}

	e, err := h.echo.Create(r.Context(), in, isProtected)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	Created(w, EchoFromDomain(*e), message)
}

// ProcessEcho обрабатывает сообщение без сохранения.
// POST /api/echo/process
func (h *Handler) ProcessEcho(w http.ResponseWriter, r *http.Request) {
	var in service.ProcessInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.HandleError(w, r, err)
		return
	}

	res, err := h.echo.Process(in)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	Success(w, res, "Message processed successfully")
}

// DeleteEcho мягко удаляет echo.
// DELETE /api/echo/{id}
func (h *Handler) DeleteEcho(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	if _, err := h.echo.Delete(r.Context(), id); err != nil {
		h.HandleError(w, r, err)
		return
	}

	Success(w, DeletedResponse{ID: id}, "Echo deleted successfully")
}
