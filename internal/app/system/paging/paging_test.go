package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		target    string
		wantPage  int
		wantLimit int
	}{
		{"defaults", "/groups", 1, DefaultPageSize},
		{"explicit", "/groups?page=3&limit=20", 3, 20},
		{"zero page", "/groups?page=0", 1, DefaultPageSize},
		{"negative page", "/groups?page=-2", 1, DefaultPageSize},
		{"garbage", "/groups?page=abc&limit=xyz", 1, DefaultPageSize},
		{"limit capped", "/groups?limit=500", 1, MaxPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			p := Parse(r)
			if p.Page != tt.wantPage {
				t.Errorf("Page: got %d, want %d", p.Page, tt.wantPage)
			}
			if p.Limit != tt.wantLimit {
				t.Errorf("Limit: got %d, want %d", p.Limit, tt.wantLimit)
			}
		})
	}
}

func TestSkip(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if got := p.Skip(); got != 20 {
		t.Errorf("Skip: got %d, want 20", got)
	}
}

func TestMetaFor(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		total     int64
		wantPages int
	}{
		{"empty", Params{Page: 1, Limit: 10}, 0, 0},
		{"exact pages", Params{Page: 1, Limit: 10}, 30, 3},
		{"partial last page", Params{Page: 2, Limit: 10}, 31, 4},
		{"single item", Params{Page: 1, Limit: 10}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.params.MetaFor(tt.total)
			if m.TotalPages != tt.wantPages {
				t.Errorf("TotalPages: got %d, want %d", m.TotalPages, tt.wantPages)
			}
			if m.CurrentPage != tt.params.Page {
				t.Errorf("CurrentPage: got %d, want %d", m.CurrentPage, tt.params.Page)
			}
			if m.TotalGroups != tt.total {
				t.Errorf("TotalGroups: got %d, want %d", m.TotalGroups, tt.total)
			}
		})
	}
}
