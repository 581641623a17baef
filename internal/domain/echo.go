package domain

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Ограничения echo.
const (
	MinMessageLength  = 1
	MaxMessageLength  = 1000
	MaxCategoryLength = 100
)

// Категории echo.
const (
	CategoryGeneral   = "general"
	CategoryTest      = "test"
	CategoryDemo      = "demo"
	CategoryImportant = "important"
)

// AllowedCategories — допустимые значения Echo.Category.
var AllowedCategories = []string{
	CategoryGeneral,
	CategoryTest,
	CategoryDemo,
	CategoryImportant,
}

// Echo — демонстрационный ресурс.
//
// Хранит исходное сообщение и его обработанную версию.
// Обработка выполняется один раз, при создании.
type Echo struct {
	Audit

	// Message — исходное сообщение (1–1000 символов).
	Message string `json:"message"`

	// Category — необязательная категория из AllowedCategories.
	// Хранится в том виде, в каком пришла от клиента.
	Category *string `json:"category,omitempty"`

	// ProcessedMessage — результат ProcessMessage(Message).
	ProcessedMessage string `json:"processed_message"`

	// IsProtected — запись создана через защищённый endpoint.
	IsProtected bool `json:"is_protected"`
}

// NewEcho собирает новую запись echo с вычисленными полями.
func NewEcho(audit Audit, message string, category *string, isProtected bool) *Echo {
	return &Echo{
		Audit:            audit,
		Message:          message,
		Category:         category,
		ProcessedMessage: ProcessMessage(message),
		IsProtected:      isProtected,
	}
}

// ProcessMessage разворачивает строку посимвольно (по рунам).
func ProcessMessage(message string) string {
	runes := []rune(message)
	slices.Reverse(runes)
	return string(runes)
}

// ValidCategory проверяет категорию без учёта регистра.
// Пустая категория допустима — поле необязательное.
func ValidCategory(category *string) bool {
	if category == nil || *category == "" {
		return true
	}
	return slices.Contains(AllowedCategories, strings.ToLower(*category))
}

// ProcessResult — результат обработки сообщения без сохранения.
type ProcessResult struct {
	Original        string `json:"original"`
	Processed       string `json:"processed"`
	Length          int    `json:"length"`
	ProcessedLength int    `json:"processed_length"`
}

// Process обрабатывает сообщение и считает длины в символах.
func Process(message string) ProcessResult {
	processed := ProcessMessage(message)
	return ProcessResult{
		Original:        message,
		Processed:       processed,
		Length:          utf8.RuneCountInString(message),
		ProcessedLength: utf8.RuneCountInString(processed),
	}
}
