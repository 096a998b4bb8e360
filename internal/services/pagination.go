package services

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// Pagination is a normalized page request.
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination clamps page to at least 1. Oversized pages are capped at
// MaxPageSize; non-positive sizes fall back to DefaultPageSize.
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize < 1:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages is ceil(total/pageSize).
func (p Pagination) TotalPages(total int64) int {
	size := int64(p.PageSize)
	return int((total + size - 1) / size)
}
