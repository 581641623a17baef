package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/shaiso/Modulo/internal/apperr"
	"github.com/shaiso/Modulo/internal/envelope"
	"github.com/shaiso/Modulo/internal/pagination"
	"github.com/shaiso/Modulo/internal/telemetry"
)

// maxBodyBytes — предел размера тела запроса.
const maxBodyBytes = 1 << 20

// JSON отправляет JSON ответ.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Success отправляет конверт с данными и статусом 200.
func Success[T any](w http.ResponseWriter, data T, message string) {
	JSON(w, http.StatusOK, envelope.OK(data, message))
}

// Created отправляет конверт с данными и статусом 201.
func Created[T any](w http.ResponseWriter, data T, message string) {
	JSON(w, http.StatusCreated, envelope.OK(data, message))
}

// List отправляет страницу.
func List[T any](w http.ResponseWriter, items []T, total int, p pagination.Params) {
	JSON(w, http.StatusOK, envelope.Paginate(items, total, p))
}

// Fail отправляет конверт ошибки.
func Fail(w http.ResponseWriter, status int, message string, details map[string]any) {
	JSON(w, status, envelope.Fail(status, message, details))
}

// HandleError переводит ошибку в конверт с HTTP статусом по её классу.
//
// Поля валидации попадают в details всегда. Тип и текст внутренней
// ошибки — только в debug-режиме.
func (h *Handler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := kind.HTTPStatus()
	details := map[string]any{}

	message := "internal server error"
	var ae *apperr.Error
	if errors.As(err, &ae) && kind != apperr.KindInternal {
		message = ae.Message
		if len(ae.Fields) > 0 {
			details["fields"] = ae.Fields
		}
	}

	switch kind {
	case apperr.KindInternal:
		telemetry.FromContext(r.Context()).Error("internal error",
			"error", err,
			"path", r.URL.Path,
		)
		if h.debug {
			details["error"] = err.Error()
			details["type"] = fmt.Sprintf("%T", rootCause(err))
		}
	case apperr.KindUnauthorized:
		w.Header().Set("WWW-Authenticate", "Bearer")
	case apperr.KindBadRequest:
		if h.debug && ae.Err != nil {
			details["error"] = ae.Err.Error()
		}
	}

	Fail(w, status, message, details)
}

// rootCause разворачивает цепочку до исходной ошибки.
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// decodeJSON читает тело запроса в v. Тело — ровно один JSON-объект
// без неизвестных полей.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.BadRequest("request body is empty", err)
		}
		return apperr.BadRequest("invalid JSON body", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return apperr.BadRequest("request body must contain a single JSON object", err)
	}
	return nil
}
