package pagination

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/shaiso/Modulo/internal/apperr"
)

func TestSkipLimit(t *testing.T) {
	for page := 1; page <= 10; page++ {
		for size := 1; size <= MaxPageSize; size++ {
			p := Params{Page: page, PageSize: size}
			if got, want := p.Skip(), (page-1)*size; got != want {
				t.Fatalf("Skip(page=%d, size=%d) = %d, want %d", page, size, got, want)
			}
			if p.Limit() != size {
				t.Fatalf("Limit(size=%d) = %d", size, p.Limit())
			}
		}
	}
}

func TestPages(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		pageSize int
		want     int
	}{
		{"empty", 0, 20, 0},
		{"one partial", 1, 20, 1},
		{"exact", 40, 20, 2},
		{"one over", 41, 20, 3},
		{"size one", 7, 1, 7},
		{"max size", 250, 100, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Params{Page: 1, PageSize: tt.pageSize}
			if got := p.Pages(tt.total); got != tt.want {
				t.Errorf("Pages(%d) = %d, want %d", tt.total, got, tt.want)
			}
		})
	}
}

func TestPages_MatchesCeil(t *testing.T) {
	for size := 1; size <= MaxPageSize; size++ {
		p := Params{Page: 1, PageSize: size}
		for total := 0; total <= 500; total += 7 {
			want := total / size
			if total%size != 0 {
				want++
			}
			if got := p.Pages(total); got != want {
				t.Fatalf("Pages(total=%d, size=%d) = %d, want %d", total, size, got, want)
			}
		}
	}
}

func TestParse_Defaults(t *testing.T) {
	p, err := Parse(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Page != DefaultPage || p.PageSize != DefaultPageSize {
		t.Errorf("got %+v, want defaults", p)
	}
}

func TestParse_Valid(t *testing.T) {
	p, err := Parse(url.Values{"page": {"3"}, "page_size": {"100"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Page != 3 || p.PageSize != 100 {
		t.Errorf("got %+v", p)
	}
	if p.Skip() != 200 {
		t.Errorf("Skip() = %d, want 200", p.Skip())
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		field string
	}{
		{"page zero", url.Values{"page": {"0"}}, "page"},
		{"negative page", url.Values{"page": {"-1"}}, "page"},
		{"page size zero", url.Values{"page_size": {"0"}}, "page_size"},
		{"page size too big", url.Values{"page_size": {"101"}}, "page_size"},
		{"page not a number", url.Values{"page": {"abc"}}, "page"},
		{"page size not a number", url.Values{"page_size": {"1.5"}}, "page_size"},
		{"page overflows offset", url.Values{"page": {"92233720368547760"}, "page_size": {"100"}}, "page"},
		{"page past max with small size", url.Values{"page": {strconv.Itoa(MaxPage + 1)}, "page_size": {"1"}}, "page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.query)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}

			var aerr *apperr.Error
			aerr, _ = err.(*apperr.Error)
			if aerr == nil {
				t.Fatalf("expected *apperr.Error, got %T", err)
			}
			if _, ok := aerr.Fields[tt.field]; !ok {
				t.Errorf("expected field %q in %v", tt.field, aerr.Fields)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if _, err := New(1, 1); err != nil {
		t.Errorf("New(1, 1): unexpected error %v", err)
	}
	if _, err := New(1, 101); err == nil {
		t.Error("New(1, 101): expected error")
	}
}

func TestSkip_MaxPageDoesNotOverflow(t *testing.T) {
	p, err := New(MaxPage, MaxPageSize)
	if err != nil {
		t.Fatalf("New(MaxPage, MaxPageSize): unexpected error %v", err)
	}
	if got, want := p.Skip(), (math.MaxInt/MaxPageSize)*MaxPageSize; got != want {
		t.Errorf("Skip() = %d, want %d", got, want)
	}
}
