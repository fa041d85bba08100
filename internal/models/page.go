package models

// Page is one slice of a larger result set, together with enough metadata
// for the view to render pagination controls. Page numbers are zero-based.
type Page[T any] struct {
	Items         []T   `json:"items"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage builds a page from a loaded slice and the total row count.
func NewPage[T any](items []T, number, size int, total int64) *Page[T] {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	return &Page[T]{
		Items:         items,
		Number:        number,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}

// EmptyPage is a page with no items, used when a query matches nothing.
func EmptyPage[T any](number, size int) *Page[T] {
	return NewPage([]T{}, number, size, 0)
}

func (p *Page[T]) HasPrevious() bool {
	return p.Number > 0
}

func (p *Page[T]) HasNext() bool {
	return p.Number+1 < p.TotalPages
}
