package query

import (
	"fmt"
	"math"
)

// PaginationConfig holds the defaults applied to listing requests.
type PaginationConfig struct {
	DefaultPageNumber int
	DefaultPageSize   int
	MaxPageSize       int
}

// Window is a resolved page request. Page numbers start at zero.
type Window struct {
	PageNo   int
	PageSize int
}

func (w Window) Limit() int {
	return w.PageSize
}

func (w Window) Offset() int {
	return w.PageNo * w.PageSize
}

// Normalize applies defaults to missing values and clamps the page size to the
// configured maximum. Page numbers are bounded only by the offset they produce,
// which must fit in an int.
func Normalize(pageNo, pageSize *int, cfg PaginationConfig) (Window, error) {
	w := Window{
		PageNo:   cfg.DefaultPageNumber,
		PageSize: cfg.DefaultPageSize,
	}

	if pageNo != nil {
		w.PageNo = *pageNo
	}
	if pageSize != nil {
		w.PageSize = *pageSize
	}

	if w.PageNo < 0 {
		return Window{}, fmt.Errorf("%w: %d", ErrInvalidPageNumber, w.PageNo)
	}
	if w.PageSize < 1 {
		return Window{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, w.PageSize)
	}

	if w.PageSize > cfg.MaxPageSize {
		w.PageSize = cfg.MaxPageSize
	}

	if w.PageNo > math.MaxInt/w.PageSize {
		return Window{}, fmt.Errorf("%w: %d", ErrPageOutOfRange, w.PageNo)
	}

	return w, nil
}
