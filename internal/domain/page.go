package domain

// Page is one window of an ordered result set.
type Page[T any] struct {
	Items         []T
	PageNo        int
	PageSize      int
	TotalElements int
	TotalPages    int
}

func NewPage[T any](items []T, totalElements, pageNo, pageSize int) *Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalElements + pageSize - 1) / pageSize
	}

	return &Page[T]{
		Items:         items,
		PageNo:        pageNo,
		PageSize:      pageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
	}
}
