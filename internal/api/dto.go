package api

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/shaiso/Modulo/internal/domain"
)

// Echo DTOs

// EchoResponse — echo в ответе API.
type EchoResponse struct {
	ID               uuid.UUID  `json:"id"`
	Message          string     `json:"message"`
	Category         *string    `json:"category"`
	ProcessedMessage string     `json:"processed_message"`
	IsProtected      bool       `json:"is_protected"`
	Length           int        `json:"length"`
	ProcessedLength  int        `json:"processed_length"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeletedAt        *time.Time `json:"deleted_at,omitempty"`
}

// EchoFromDomain конвертирует domain.Echo в EchoResponse.
func EchoFromDomain(e domain.Echo) EchoResponse {
	return EchoResponse{
		ID:               e.ID,
		Message:          e.Message,
		Category:         e.Category,
		ProcessedMessage: e.ProcessedMessage,
		IsProtected:      e.IsProtected,
		Length:           utf8.RuneCountInString(e.Message),
		ProcessedLength:  utf8.RuneCountInString(e.ProcessedMessage),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
		DeletedAt:        e.DeletedAt,
	}
}

// Contact DTOs

// ContactResponse — контакт в ответе API.
type ContactResponse struct {
	ID        uuid.UUID  `json:"id"`
	Phone     string     `json:"phone"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// ContactFromDomain конвертирует domain.Contact в ContactResponse.
func ContactFromDomain(c domain.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Phone:     c.Phone,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}

// DeletedResponse — ответ на мягкое удаление.
type DeletedResponse struct {
	ID uuid.UUID `json:"id"`
}

// Service DTOs

// InfoResponse — ответ корневого endpoint.
type InfoResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Health  string `json:"health"`
	Metrics string `json:"metrics"`
}

// HealthResponse — состояние сервиса и хранилища.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
	Storage   string    `json:"storage"`
	Events    string    `json:"events,omitempty"`
	Uptime    float64   `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}
