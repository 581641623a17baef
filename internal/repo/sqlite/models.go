package sqlite

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/shaiso/Modulo/internal/domain"
)

// timestampLayout — UTC с микросекундами фиксированной ширины:
// текстовый порядок строк совпадает с порядком времени.
const timestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// Timestamp — время, которое SQLite хранит строкой timestampLayout.
type Timestamp time.Time

func stamp(t time.Time) Timestamp {
	return Timestamp(t.UTC().Truncate(time.Microsecond))
}

// Time возвращает значение в UTC.
func (t Timestamp) Time() time.Time {
	return time.Time(t).UTC()
}

func (Timestamp) GormDataType() string {
	return "text"
}

func (t Timestamp) Value() (driver.Value, error) {
	return t.Time().Format(timestampLayout), nil
}

func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = stamp(v)
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return errors.Errorf("scan timestamp: unsupported type %T", src)
	}
}

func (t *Timestamp) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return errors.Wrapf(err, "parse timestamp %q", s)
	}
	*t = stamp(parsed)
	return nil
}

// AuditColumns — колонки идентичности и аудита, общие для всех таблиц.
type AuditColumns struct {
	ID        string     `gorm:"primaryKey;type:char(36)"`
	CreatedAt Timestamp  `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt Timestamp  `gorm:"not null;autoUpdateTime:false"`
	DeletedAt *Timestamp `gorm:"index"`
}

func fromAudit(a domain.Audit) AuditColumns {
	cols := AuditColumns{
		ID:        a.ID.String(),
		CreatedAt: stamp(a.CreatedAt),
		UpdatedAt: stamp(a.UpdatedAt),
	}
	if a.DeletedAt != nil {
		d := stamp(*a.DeletedAt)
		cols.DeletedAt = &d
	}
	return cols
}

func (c AuditColumns) toAudit() (domain.Audit, error) {
	id, err := uuid.Parse(c.ID)
	if err != nil {
		return domain.Audit{}, errors.Wrapf(err, "parse id %q", c.ID)
	}
	audit := domain.Audit{
		ID:        id,
		CreatedAt: c.CreatedAt.Time(),
		UpdatedAt: c.UpdatedAt.Time(),
	}
	if c.DeletedAt != nil {
		d := c.DeletedAt.Time()
		audit.DeletedAt = &d
	}
	return audit, nil
}

type echoRow struct {
	AuditColumns     `gorm:"embedded"`
	Message          string  `gorm:"type:text;not null"`
	Category         *string `gorm:"size:100"`
	ProcessedMessage string  `gorm:"type:text;not null"`
	IsProtected      bool    `gorm:"not null;default:false"`
}

func (echoRow) TableName() string { return "echo_items" }

func fromEcho(e *domain.Echo) *echoRow {
	return &echoRow{
		AuditColumns:     fromAudit(e.Audit),
		Message:          e.Message,
		Category:         e.Category,
		ProcessedMessage: e.ProcessedMessage,
		IsProtected:      e.IsProtected,
	}
}

func (r *echoRow) toDomain() (*domain.Echo, error) {
	audit, err := r.toAudit()
	if err != nil {
		return nil, err
	}
	return &domain.Echo{
		Audit:            audit,
		Message:          r.Message,
		Category:         r.Category,
		ProcessedMessage: r.ProcessedMessage,
		IsProtected:      r.IsProtected,
	}, nil
}

type contactRow struct {
	AuditColumns `gorm:"embedded"`
	Phone        string `gorm:"size:32;not null"`
	Name         string `gorm:"size:255;not null"`
}

func (contactRow) TableName() string { return "contacts" }

func fromContact(c *domain.Contact) *contactRow {
	return &contactRow{
		AuditColumns: fromAudit(c.Audit),
		Phone:        c.Phone,
		Name:         c.Name,
	}
}

func (r *contactRow) toDomain() (*domain.Contact, error) {
	audit, err := r.toAudit()
	if err != nil {
		return nil, err
	}
	return &domain.Contact{
		Audit: audit,
		Phone: r.Phone,
		Name:  r.Name,
	}, nil
}
