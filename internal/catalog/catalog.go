// Package catalog holds the movie and director use cases: listing with
// filters and pagination, CRUD, image handling and director cache upkeep.
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/strutynskyi/movie-catalog/internal/domain"
	"go.opentelemetry.io/otel"
)

const instrumentationName = "github.com/strutynskyi/movie-catalog/internal/catalog"

var tracer = otel.Tracer(instrumentationName)

const (
	movieImagePrefix    = "movies"
	directorImagePrefix = "directors"
)

// imageKeeper assigns keys to uploaded images and removes replaced ones.
type imageKeeper struct {
	store  domain.ImageStore
	logger *slog.Logger
}

func (k imageKeeper) save(ctx context.Context, prefix string, image *domain.Image) (*string, error) {
	if image == nil {
		return nil, nil
	}

	image.Key = prefix + "/" + uuid.NewString()

	err := k.store.Put(ctx, image)
	if err != nil {
		return nil, err
	}

	return &image.Key, nil
}

// discard deletes images that are no longer referenced. Failures leave an
// orphaned blob behind and are only logged.
func (k imageKeeper) discard(ctx context.Context, keys ...*string) {
	for _, key := range keys {
		if key == nil {
			continue
		}

		err := k.store.Delete(ctx, *key)
		if err != nil {
			k.logger.Warn("failed to delete image", "key", *key, "error", err)
		}
	}
}

func (k imageKeeper) load(ctx context.Context, key *string) (*domain.Image, error) {
	if key == nil {
		return nil, domain.ErrImageNotFound
	}

	return k.store.Get(ctx, *key)
}
