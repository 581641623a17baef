package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func TestProcessMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello", "olleh"},
		{"", ""},
		{"a", "a"},
		{"привет", "тевирп"},
		{"ab cd", "dc ba"},
	}

	for _, tt := range tests {
		if got := ProcessMessage(tt.in); got != tt.want {
			t.Errorf("ProcessMessage(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProcess(t *testing.T) {
	res := Process("hello")
	if res.Processed != "olleh" || res.Length != 5 || res.ProcessedLength != 5 {
		t.Errorf("unexpected result: %+v", res)
	}

	res = Process("мир")
	if res.Length != 3 {
		t.Errorf("Length counts runes, got %d", res.Length)
	}
}

func TestValidCategory(t *testing.T) {
	tests := []struct {
		category *string
		want     bool
	}{
		{nil, true},
		{strPtr(""), true},
		{strPtr("general"), true},
		{strPtr("GENERAL"), true},
		{strPtr("Important"), true},
		{strPtr("bogus"), false},
		{strPtr(" general"), false},
	}

	for _, tt := range tests {
		if got := ValidCategory(tt.category); got != tt.want {
			name := "<nil>"
			if tt.category != nil {
				name = *tt.category
			}
			t.Errorf("ValidCategory(%q) = %v, want %v", name, got, tt.want)
		}
	}
}

func TestNewEcho(t *testing.T) {
	now := time.Now().UTC()
	e := NewEcho(NewAudit(now), "hello", strPtr("demo"), true)

	if e.ID == uuid.Nil {
		t.Error("ID should be assigned")
	}
	if e.ProcessedMessage != "olleh" {
		t.Errorf("ProcessedMessage = %q", e.ProcessedMessage)
	}
	if !e.CreatedAt.Equal(now) || !e.UpdatedAt.Equal(now) {
		t.Error("timestamps should equal now")
	}
	if e.IsDeleted() {
		t.Error("new echo should be live")
	}
	if !e.IsProtected {
		t.Error("IsProtected should be kept")
	}
}

func TestAudit_MarkDeleted(t *testing.T) {
	created := time.Now().UTC()
	a := NewAudit(created)

	deletedAt := created.Add(time.Second)
	if !a.MarkDeleted(deletedAt) {
		t.Fatal("first MarkDeleted should succeed")
	}
	if !a.IsDeleted() {
		t.Error("should be deleted")
	}
	if !a.UpdatedAt.Equal(deletedAt) {
		t.Error("UpdatedAt should be refreshed")
	}
	if !a.CreatedAt.Equal(created) {
		t.Error("CreatedAt must not change")
	}

	if a.MarkDeleted(deletedAt.Add(time.Hour)) {
		t.Error("second MarkDeleted should report false")
	}
	if !a.DeletedAt.Equal(deletedAt) {
		t.Error("DeletedAt must not move")
	}
}

func TestNewContact(t *testing.T) {
	c := NewContact(NewAudit(time.Now()), "  Ali Valiyev ", " +998 90 123-45-67 ")
	if c.Name != "Ali Valiyev" || c.Phone != "+998 90 123-45-67" {
		t.Errorf("fields should be trimmed: %+v", c)
	}
	if c.String() != "Ali Valiyev==+998 90 123-45-67" {
		t.Errorf("String() = %q", c.String())
	}
}
