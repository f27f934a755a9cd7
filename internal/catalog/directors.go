package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/strutynskyi/movie-catalog/internal/domain"
)

type DirectorService struct {
	repo   domain.DirectorRepository
	movies domain.MovieRepository
	cache  domain.DirectorCache
	images imageKeeper
	logger *slog.Logger
}

func NewDirectorService(
	repo domain.DirectorRepository,
	movies domain.MovieRepository,
	cache domain.DirectorCache,
	images domain.ImageStore,
	logger *slog.Logger) *DirectorService {

	return &DirectorService{
		repo:   repo,
		movies: movies,
		cache:  cache,
		images: imageKeeper{store: images, logger: logger},
		logger: logger,
	}
}

func (s *DirectorService) FindAll(ctx context.Context) ([]domain.Director, error) {
	return s.repo.GetAll(ctx)
}

// FindByID returns the director with its movies, serving from the cache when
// possible. Cache failures fall back to the database.
func (s *DirectorService) FindByID(ctx context.Context, id int) (*domain.Director, error) {
	ctx, span := tracer.Start(ctx, "DirectorService.FindByID")
	defer span.End()

	director, err := s.cache.Get(ctx, id)
	if err == nil {
		return director, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		s.logger.Warn("director cache lookup failed", "id", id, "error", err)
	}

	director, err = s.repo.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	director.Movies, err = s.movies.GetByDirectorId(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.cache.Set(ctx, director)
	if err != nil {
		s.logger.Warn("failed to cache director", "id", id, "error", err)
	}

	return director, nil
}

func (s *DirectorService) ExistsByName(ctx context.Context, firstName, lastName string) (bool, error) {
	return s.repo.ExistsByName(ctx, firstName, lastName)
}

func (s *DirectorService) Create(ctx context.Context, director *domain.Director, image *domain.Image) error {
	var err error

	director.ImageKey, err = s.images.save(ctx, directorImagePrefix, image)
	if err != nil {
		return err
	}

	err = s.repo.Create(ctx, director)
	if err != nil {
		s.images.discard(ctx, director.ImageKey)
		return err
	}

	director.Movies = []domain.Movie{}

	s.logger.Info("created director", "id", director.ID)

	return nil
}

func (s *DirectorService) Update(
	ctx context.Context,
	id int,
	upd domain.DirectorUpdate,
	image *domain.Image) (*domain.Director, error) {

	var err error

	upd.ImageKey, err = s.images.save(ctx, directorImagePrefix, image)
	if err != nil {
		return nil, err
	}

	director, previous, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		s.images.discard(ctx, upd.ImageKey)
		return nil, err
	}

	s.images.discard(ctx, previous)
	s.Evict(ctx, id)

	director.Movies, err = s.movies.GetByDirectorId(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("updated director", "id", director.ID)

	return director, nil
}

// Delete removes the director together with its movies and every image they
// referenced.
func (s *DirectorService) Delete(ctx context.Context, id int) (*domain.Director, error) {
	director, imageKeys, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, key := range imageKeys {
		s.images.discard(ctx, &key)
	}
	s.Evict(ctx, id)

	s.logger.Info("deleted director", "id", director.ID, "images", len(imageKeys))

	return director, nil
}

func (s *DirectorService) Image(ctx context.Context, id int) (*domain.Image, error) {
	director, err := s.repo.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.images.load(ctx, director.ImageKey)
}

// Evict drops the cached details of a director. Failures are logged; a stale
// entry expires with its TTL.
func (s *DirectorService) Evict(ctx context.Context, id int) {
	err := s.cache.Evict(ctx, id)
	if err != nil {
		s.logger.Warn("failed to evict director from cache", "id", id, "error", err)
	}
}
