package api

import (
	"net/http"

	"github.com/shaiso/Modulo/internal/envelope"
	"github.com/shaiso/Modulo/internal/pagination"
	"github.com/shaiso/Modulo/internal/service"
)

// ListContacts возвращает страницу контактов.
// GET /api/progas/contacts
func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	p, err := pagination.Parse(r.URL.Query())
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	items, total, err := h.contacts.List(r.Context(), p)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	List(w, envelope.Map(items, ContactFromDomain), total, p)
}

// GetContact возвращает контакт по ID.
// GET /api/progas/contacts/{id}
func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	c, err := h.contacts.Get(r.Context(), id)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	Success(w, ContactFromDomain(*c), "")
}

// CreateContact создаёт контакт.
// POST /api/progas/contacts
func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.HandleError(w, r, err)
		return
	}

	c, err := h.contacts.Create(r.Context(), in)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	Created(w, ContactFromDomain(*c), "Contact created successfully")
}

// DeleteContact мягко удаляет контакт.
// DELETE /api/progas/contacts/{id}
func (h *Handler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.HandleError(w, r, err)
		return
	}

	if _, err := h.contacts.Delete(r.Context(), id); err != nil {
		h.HandleError(w, r, err)
		return
	}

	Success(w, DeletedResponse{ID: id}, "Contact deleted successfully")
}
