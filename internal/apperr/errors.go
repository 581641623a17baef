// Package apperr содержит типизированные ошибки сервисного слоя.
//
// Каждая ошибка имеет Kind, по которому транспорт выбирает HTTP статус:
//   - BadRequest    — запрос не разбирается: битый JSON, неверный UUID (400)
//   - NotFound      — запись не найдена или мягко удалена (404)
//   - Validation    — вход нарушает объявленное ограничение (422)
//   - AccessDenied  — нет требуемого credential (403)
//   - Unauthorized  — credential передан, но неверный (401)
//   - Internal      — всё остальное (500)
package apperr

import (
	"errors"
	"net/http"
)

// Kind — класс ошибки.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindAccessDenied
	KindUnauthorized
	KindBadRequest
)

// String возвращает имя класса для логов.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindAccessDenied:
		return "access_denied"
	case KindUnauthorized:
		return "unauthorized"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// HTTPStatus возвращает HTTP статус для класса ошибки.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindAccessDenied:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error — ошибка с классом и сообщением для клиента.
type Error struct {
	Kind    Kind              // класс ошибки
	Message string            // сообщение, безопасное для клиента
	Fields  map[string]string // ошибки по полям (только для Validation)
	Err     error             // исходная ошибка
}

// Error реализует интерфейс error.
func (e *Error) Error() string {
	if e.Err != nil && e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap возвращает исходную ошибку.
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound создаёт ошибку "не найдено".
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Validation создаёт ошибку валидации. fields может быть nil.
func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// AccessDenied создаёт ошибку отсутствия доступа.
func AccessDenied(message string) *Error {
	return &Error{Kind: KindAccessDenied, Message: message}
}

// Unauthorized создаёт ошибку неверного credential.
func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// BadRequest создаёт ошибку неразборчивого запроса.
func BadRequest(message string, err error) *Error {
	return &Error{Kind: KindBadRequest, Message: message, Err: err}
}

// Internal оборачивает непредвиденную ошибку.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf возвращает класс ошибки. Неклассифицированные ошибки — Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Is проверяет, что ошибка относится к классу kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
