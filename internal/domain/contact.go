package domain

import "strings"

// Contact — контакт пользователя (ресурс progas).
type Contact struct {
	Audit

	// Phone — номер телефона, как его ввёл пользователь.
	Phone string `json:"phone"`

	// Name — имя и фамилия.
	Name string `json:"name"`
}

// NewContact собирает новый контакт.
func NewContact(audit Audit, name, phone string) *Contact {
	return &Contact{
		Audit: audit,
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
	}
}

// String возвращает "имя==телефон".
func (c *Contact) String() string {
	return c.Name + "==" + c.Phone
}
