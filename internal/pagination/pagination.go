// Package pagination parses page/limit query parameters and computes page metadata.
//
// Malformed input never fails a request: anything that is not a positive integer falls
// back to the default, limits above MaxLimit are clamped, and pages above MaxPage are
// clamped so the row offset always fits in an int.
package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage = 1
	MaxLimit    = 100
	MaxPage     = math.MaxInt / MaxLimit
)

// Query is a validated page request. Page and Limit are always >= 1.
type Query struct {
	Page  int
	Limit int
}

// Parse builds a Query from raw query-string values using defaultLimit when limit is
// missing or invalid.
func Parse(rawPage, rawLimit string, defaultLimit int) Query {
	if defaultLimit < 1 {
		defaultLimit = 1
	}
	if defaultLimit > MaxLimit {
		defaultLimit = MaxLimit
	}

	q := Query{
		Page:  positiveOr(rawPage, DefaultPage),
		Limit: positiveOr(rawLimit, defaultLimit),
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	return q
}

// Offset is the number of ranked rows skipped before this page.
func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Meta is the pagination block returned alongside a page of results.
type Meta struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	Total       int  `json:"total"`
	HasMore     bool `json:"hasMore"`
}

// NewMeta computes metadata for a page holding returned items out of total.
func NewMeta(q Query, returned, total int) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + q.Limit - 1) / q.Limit
	}
	return Meta{
		CurrentPage: q.Page,
		TotalPages:  totalPages,
		Total:       total,
		HasMore:     q.Offset()+returned < total,
	}
}

// Window returns the [start, end) bounds of the page within a slice of length n.
func (q Query) Window(n int) (int, int) {
	start := q.Offset()
	if start < 0 {
		// overflowed offset; nothing lies that far out
		return n, n
	}
	if start > n {
		start = n
	}
	end := start + q.Limit
	if end > n {
		end = n
	}
	return start, end
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}
