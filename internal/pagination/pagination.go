// Package pagination переводит page/page_size в offset/limit и считает
// количество страниц.
//
// Проверка диапазонов — предусловие: Parse отклоняет выход за границы
// ошибкой валидации и никогда не "подрезает" значения.
package pagination

import (
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/shaiso/Modulo/internal/apperr"
	"github.com/shaiso/Modulo/internal/validation"
)

// Значения по умолчанию и границы.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// MaxPage — граница, при которой Skip не переполняет int.
	MaxPage = math.MaxInt/MaxPageSize + 1
)

// Params — параметры страницы.
type Params struct {
	Page     int `json:"page" validate:"gte=1"`
	PageSize int `json:"page_size" validate:"gte=1,lte=100"`
}

// Default возвращает первую страницу стандартного размера.
func Default() Params {
	return Params{Page: DefaultPage, PageSize: DefaultPageSize}
}

// New создаёт и проверяет параметры.
func New(page, pageSize int) (Params, error) {
	p := Params{Page: page, PageSize: pageSize}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Parse читает page и page_size из query string.
// Отсутствующие параметры получают значения по умолчанию.
func Parse(q url.Values) (Params, error) {
	p := Default()
	fields := map[string]string{}

	if raw := q.Get("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			fields["page"] = "must be an integer"
		}
		p.Page = v
	}
	if raw := q.Get("page_size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			fields["page_size"] = "must be an integer"
		}
		p.PageSize = v
	}

	if len(fields) > 0 {
		return Params{}, apperr.Validation("invalid pagination parameters", fields)
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate проверяет диапазоны.
func (p Params) Validate() error {
	if err := validation.Struct(p); err != nil {
		return err
	}
	if p.Page > MaxPage {
		return apperr.Validation("invalid pagination parameters", map[string]string{
			"page": fmt.Sprintf("must be at most %d", MaxPage),
		})
	}
	return nil
}

// Skip — сколько записей пропустить (offset).
func (p Params) Skip() int {
	return (p.Page - 1) * p.PageSize
}

// Limit — максимум записей на странице.
func (p Params) Limit() int {
	return p.PageSize
}

// Pages возвращает число страниц для total записей: ceil(total/page_size).
func (p Params) Pages(total int) int {
	if total <= 0 || p.PageSize <= 0 {
		return 0
	}
	return (total + p.PageSize - 1) / p.PageSize
}
