package user

import (
	"math"
	"strconv"
)

const (
	// DefaultPage is used when the requested page is missing or not a positive integer.
	DefaultPage int64 = 1
	// DefaultLimit is used when the requested limit is missing or not a positive integer.
	DefaultLimit int64 = 10
)

// Params is a coerced page/limit pair. Both fields are always positive.
type Params struct {
	Page  int64
	Limit int64
}

// NewParams coerces non-positive values to their defaults.
func NewParams(page, limit int64) Params {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Params{Page: page, Limit: limit}
}

// ParseParams builds Params from raw query string values.
// Anything that is not a base-10 integer falls back to the default.
func ParseParams(page, limit string) Params {
	return NewParams(parseInt(page), parseInt(limit))
}

func parseInt(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// Skip returns the number of records to bypass before the page starts.
// It saturates at math.MaxInt64 instead of overflowing.
func (p Params) Skip() int64 {
	if p.Page-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Page - 1) * p.Limit
}

// Pagination represents pagination information for list responses.
type Pagination struct {
	Total      int64 // Total number of records
	Page       int64 // Current page number (1-based)
	Limit      int64 // Number of records per page
	TotalPages int64 // Total number of pages
}

// TotalPages returns ceil(total/limit). A non-positive limit is treated as DefaultLimit.
func TotalPages(total, limit int64) int64 {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if total <= 0 {
		return 0
	}
	return (total-1)/limit + 1
}

// NewPagination creates a new Pagination instance with calculated total pages.
func NewPagination(total int64, p Params) *Pagination {
	return &Pagination{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: TotalPages(total, p.Limit),
	}
}
