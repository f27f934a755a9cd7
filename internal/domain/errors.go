package domain

import "errors"

var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrImageNotFound         = errors.New("image not found")
	ErrMovieAlreadyExists    = errors.New("movie already exists")
	ErrDirectorAlreadyExists = errors.New("director already exists")
	ErrUnsupportedImage      = errors.New("unsupported image type")
	ErrImageTooLarge         = errors.New("image is too large")
)
