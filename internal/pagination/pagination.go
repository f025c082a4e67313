// Package pagination computes limit/offset paging and next/previous links
// for list endpoints.
package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is used when the caller supplies no limit.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of what the caller asks for.
	MaxLimit = 100
)

// Params is a parsed set of paging parameters.
type Params struct {
	Limit int
	Page  int
}

// FromQuery parses limit and page from URL query values, applying defaults
// and the limit cap. Pages are 1-based.
func FromQuery(values url.Values) Params {
	p := Params{Limit: DefaultLimit, Page: 1}

	if raw := values.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			p.Limit = limit
		}
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}

	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 0 {
			p.Page = page
		}
	}

	return p
}

// Offset returns the row offset for the current page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Links holds optional next/previous page URLs.
type Links struct {
	Next *string `json:"next,omitempty"`
	Prev *string `json:"prev,omitempty"`
}

// PageLinks builds next/previous URLs for the given path. The next link is
// omitted when the current page returned fewer rows than the limit, the
// previous link on the first page.
func (p Params) PageLinks(path string, returned int) Links {
	var links Links
	if returned == p.Limit {
		next := fmt.Sprintf("%s?limit=%d&page=%d", path, p.Limit, p.Page+1)
		links.Next = &next
	}
	if p.Page > 1 {
		prev := fmt.Sprintf("%s?limit=%d&page=%d", path, p.Limit, p.Page-1)
		links.Prev = &prev
	}
	return links
}
