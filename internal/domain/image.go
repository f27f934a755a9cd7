package domain

import "context"

type Image struct {
	Key         string
	Name        string
	ContentType string
	Data        []byte
}

// ImageStore persists uploaded images. Get returns ErrImageNotFound for
// unknown keys and Delete is a no-op for them.
type ImageStore interface {
	Put(ctx context.Context, image *Image) error
	Get(ctx context.Context, key string) (*Image, error)
	Delete(ctx context.Context, key string) error
}
