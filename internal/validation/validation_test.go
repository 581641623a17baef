package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/shaiso/Modulo/internal/apperr"
)

type sample struct {
	Message  string  `json:"message" validate:"required,min=1,max=10"`
	Category *string `json:"category,omitempty" validate:"omitempty,max=3"`
	Phone    string  `json:"phone" validate:"omitempty,phone"`
}

func TestStruct_OK(t *testing.T) {
	cat := "abc"
	if err := Struct(sample{Message: "hi", Category: &cat, Phone: "+1 (555) 010-99"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStruct_Fields(t *testing.T) {
	cat := "abcd"
	err := Struct(sample{Message: strings.Repeat("x", 11), Category: &cat, Phone: "call me"})

	var aerr *apperr.Error
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if aerr.Kind != apperr.KindValidation {
		t.Errorf("Kind = %v", aerr.Kind)
	}

	for _, field := range []string{"message", "category", "phone"} {
		if _, ok := aerr.Fields[field]; !ok {
			t.Errorf("missing field %q in %v", field, aerr.Fields)
		}
	}
	if aerr.Fields["message"] != "must be at most 10 characters" {
		t.Errorf("message field = %q", aerr.Fields["message"])
	}
}

func TestStruct_Required(t *testing.T) {
	err := Struct(sample{})

	var aerr *apperr.Error
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if aerr.Fields["message"] != "is required" {
		t.Errorf("message field = %q", aerr.Fields["message"])
	}
}

func TestStruct_CountsRunes(t *testing.T) {
	if err := Struct(sample{Message: "ёёёёёёёёёё"}); err != nil {
		t.Errorf("10 runes should pass: %v", err)
	}
}
