package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit — идентичность и аудит-поля, общие для всех сущностей.
//
// Встраивается в каждую сущность композицией. Проверки "живости"
// сущность делегирует Audit.
type Audit struct {
	// ID — глобально уникальный идентификатор. Назначается при создании
	// и никогда не меняется. Единственный ключ поиска.
	ID uuid.UUID `json:"id"`

	// CreatedAt — время вставки. Не изменяется.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt — время вставки, обновляется при каждой мутации.
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt — время мягкого удаления. nil — запись "живая".
	// Однажды установленное, обратно в nil не сбрасывается.
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewAudit создаёт аудит-поля для новой записи.
func NewAudit(now time.Time) Audit {
	return Audit{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsDeleted возвращает true, если запись мягко удалена.
func (a *Audit) IsDeleted() bool {
	return a.DeletedAt != nil
}

// MarkDeleted помечает запись удалённой.
// Возвращает false, если запись уже была удалена: повторная пометка
// не сдвигает DeletedAt.
func (a *Audit) MarkDeleted(now time.Time) bool {
	if a.DeletedAt != nil {
		return false
	}
	a.DeletedAt = &now
	a.UpdatedAt = now
	return true
}
