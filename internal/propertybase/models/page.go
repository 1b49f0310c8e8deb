package models

import "math"

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps Offset within an int32 at MaxLimit.
	MaxPage = math.MaxInt32 / MaxLimit
)

// PageRequest selects a 1-based page of a list.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaults and clamps the page and limit.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Offset is the number of rows skipped before the page.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// PageMeta describes the position of a page within the full result.
type PageMeta struct {
	TotalRecords int64 `json:"totalRecords"`
	Page         int   `json:"page"`
	Limit        int   `json:"limit"`
	Count        int   `json:"count"`
}

// Page is the paginated content envelope.
type Page[T any] struct {
	Content []T      `json:"content"`
	Meta    PageMeta `json:"_meta"`
}

// NewPage wraps items, never emitting a null content array.
func NewPage[T any](items []T, total int64, req PageRequest) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Content: items,
		Meta: PageMeta{
			TotalRecords: total,
			Page:         req.Page,
			Limit:        req.Limit,
			Count:        len(items),
		},
	}
}
