// Package paging implements the offset pagination used by the group
// listing endpoint: a 1-based page number, a bounded page size, and a
// metadata block echoed back to the client.
package paging

import (
	"net/http"
	"strconv"
)

// DefaultPageSize is the number of groups per page when the client does not
// ask for a specific limit.
const DefaultPageSize = 10

// MaxPageSize caps client-requested page sizes.
const MaxPageSize = 50

// Params holds sanitized pagination inputs.
type Params struct {
	Page  int
	Limit int
}

// Parse reads "page" and "limit" query parameters, falling back to page 1
// and DefaultPageSize on absent or invalid values.
func Parse(r *http.Request) Params {
	p := Params{Page: 1, Limit: DefaultPageSize}
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Limit = n
			if p.Limit > MaxPageSize {
				p.Limit = MaxPageSize
			}
		}
	}
	return p
}

// Skip returns the document offset for the page.
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.Limit)
}

// Meta is the pagination block returned alongside a page of results.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalGroups int64 `json:"totalGroups"`
}

// MetaFor computes pagination metadata for a total count.
func (p Params) MetaFor(total int64) Meta {
	pages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return Meta{
		CurrentPage: p.Page,
		TotalPages:  pages,
		TotalGroups: total,
	}
}
