package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain", errors.New("boom"), KindInternal},
		{"not found", NotFound("echo not found"), KindNotFound},
		{"wrapped", fmt.Errorf("get: %w", NotFound("x")), KindNotFound},
		{"validation", Validation("bad", nil), KindValidation},
		{"access denied", AccessDenied("no"), KindAccessDenied},
		{"unauthorized", Unauthorized("no"), KindUnauthorized},
		{"bad request", BadRequest("invalid JSON body", errors.New("eof")), KindBadRequest},
		{"internal", Internal(errors.New("db down")), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := map[Kind]int{
		KindNotFound:     http.StatusNotFound,
		KindValidation:   http.StatusUnprocessableEntity,
		KindAccessDenied: http.StatusForbidden,
		KindUnauthorized: http.StatusUnauthorized,
		KindBadRequest:   http.StatusBadRequest,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := kind.HTTPStatus(); got != want {
			t.Errorf("%v.HTTPStatus() = %d, want %d", kind, got, want)
		}
	}
}

func TestInternal_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	if !errors.Is(err, cause) {
		t.Error("Internal should unwrap to cause")
	}
	if err.Message != "internal server error" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestIs(t *testing.T) {
	if Is(nil, KindInternal) {
		t.Error("nil is not an error of any kind")
	}
	if !Is(NotFound("x"), KindNotFound) {
		t.Error("expected NotFound")
	}
}
