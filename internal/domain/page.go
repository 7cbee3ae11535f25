package domain

import "math"

// Paging defaults.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	RecentTaskLimit = 5
)

// PageRequest selects one zero-based page of results.
type PageRequest struct {
	Page int
	Size int
}

// NewPageRequest normalizes page and size: negative pages become 0, size is
// clamped to [1, MaxPageSize] and defaults to DefaultPageSize when unset.
// page is capped so that Offset never overflows.
func NewPageRequest(page, size int) PageRequest {
	if page < 0 {
		page = 0
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	if maxPage := math.MaxInt / size; page > maxPage {
		page = maxPage
	}
	return PageRequest{Page: page, Size: size}
}

// Offset is the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// TaskPage is one page of an owner's tasks plus the total across all pages.
type TaskPage struct {
	Tasks         []*Task
	Page          int
	Size          int
	TotalElements int64
}

// TotalPages is the number of pages needed to hold TotalElements.
func (p TaskPage) TotalPages() int {
	if p.Size <= 0 || p.TotalElements == 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}
