package domain

import "math"

// PaginationParams carries page/limit values from the HTTP layer to the store reads.
// Page is 1-indexed. Limit is capped at 100 by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=20).
// The limit is capped at 100 to prevent runaway responses.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based index of the first item on the page. It
// saturates at math.MaxInt instead of overflowing for huge page numbers.
func (p PaginationParams) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Bounds returns the half-open slice range [lo, hi) of the page within a
// collection of total items, always with 0 <= lo <= hi <= total. Pages past
// the end yield lo == hi == total.
func (p PaginationParams) Bounds(total int) (lo, hi int) {
	lo = min(p.Offset(), total)
	hi = lo
	if p.Limit > 0 {
		hi += min(p.Limit, total-lo)
	}
	return lo, hi
}
