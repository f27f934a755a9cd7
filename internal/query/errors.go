package query

import "errors"

var (
	ErrInvalidFilterField = errors.New("invalid filter field")
	ErrInvalidFilterValue = errors.New("invalid filter value")
	ErrInvalidPageNumber  = errors.New("page number must not be negative")
	ErrInvalidPageSize    = errors.New("page size must be greater than zero")
	ErrPageOutOfRange     = errors.New("page number out of range")
)
