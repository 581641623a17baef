// Package envelope описывает единый формат ответов API.
//
// Любой ответ — объект со статусом:
//
//	{"status": "ok", "data": ..., "message": "..."}
//	{"status": "ok", "items": [...], "total": 3, "page": 1, "page_size": 20, "pages": 1}
//	{"status": "error", "message": "...", "error_code": 404, "details": {...}}
//
// Голый payload или голый массив не возвращается никогда.
package envelope

import "github.com/shaiso/Modulo/internal/pagination"

// Статусы ответа.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Response — успешный ответ с одним объектом.
type Response[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// Page — успешный ответ со страницей объектов.
type Page[T any] struct {
	Status   string `json:"status"`
	Items    []T    `json:"items"`
	Total    int    `json:"total"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Pages    int    `json:"pages"`
}

// Error — ответ с ошибкой. Details заполняется только в debug-режиме
// (и для ошибок валидации — списком полей).
type Error struct {
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	ErrorCode int            `json:"error_code"`
	Details   map[string]any `json:"details,omitempty"`
}

// OK оборачивает payload.
func OK[T any](data T, message string) Response[T] {
	return Response[T]{
		Status:  StatusOK,
		Data:    data,
		Message: message,
	}
}

// Paginate оборачивает страницу и считает pages.
// nil-срез превращается в пустой, чтобы в JSON был [] а не null.
func Paginate[T any](items []T, total int, p pagination.Params) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Status:   StatusOK,
		Items:    items,
		Total:    total,
		Page:     p.Page,
		PageSize: p.PageSize,
		Pages:    p.Pages(total),
	}
}

// Fail оборачивает ошибку. Пустые details отбрасываются.
func Fail(code int, message string, details map[string]any) Error {
	if len(details) == 0 {
		details = nil
	}
	return Error{
		Status:    StatusError,
		Message:   message,
		ErrorCode: code,
		Details:   details,
	}
}

// Map переводит срез сущностей в срез DTO.
func Map[S, T any](items []S, fn func(S) T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = fn(item)
	}
	return out
}
