package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/strutynskyi/movie-catalog/internal/domain"
	"github.com/strutynskyi/movie-catalog/internal/query"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type MovieService struct {
	repo           domain.MovieRepository
	directors      *DirectorService
	images         imageKeeper
	planner        *query.Planner
	logger         *slog.Logger
	droppedFilters metric.Int64Counter
}

func NewMovieService(
	repo domain.MovieRepository,
	directors *DirectorService,
	images domain.ImageStore,
	planner *query.Planner,
	logger *slog.Logger) *MovieService {

	droppedFilters, err := otel.Meter(instrumentationName).Int64Counter(
		"catalog.filters.dropped",
		metric.WithDescription("Filter fields removed by the allow-list"),
	)
	if err != nil {
		logger.Warn("failed to create dropped filters counter", "error", err)
		droppedFilters = noop.Int64Counter{}
	}

	return &MovieService{
		repo:           repo,
		directors:      directors,
		images:         imageKeeper{store: images, logger: logger},
		planner:        planner,
		logger:         logger,
		droppedFilters: droppedFilters,
	}
}

// FindAll lists movies matching every accepted filter. Any filter that cannot
// be built fails the whole request; storage errors are returned unchanged.
func (s *MovieService) FindAll(ctx context.Context, req query.Request) (*domain.Page[domain.Movie], error) {
	ctx, span := tracer.Start(ctx, "MovieService.FindAll")
	defer span.End()

	plan, err := s.planner.Plan(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if len(plan.Dropped) > 0 {
		s.logger.Debug("filters dropped by allow-list", "fields", plan.Dropped)
		s.droppedFilters.Add(ctx, int64(len(plan.Dropped)))
	}

	span.SetAttributes(
		attribute.Int("page.number", plan.Window.PageNo),
		attribute.Int("page.size", plan.Window.PageSize),
	)

	page, err := s.repo.FindAll(ctx, plan.Predicate, plan.Window)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage failure")
		return nil, err
	}

	s.logger.Info("retrieved movies", "count", len(page.Items), "total", page.TotalElements)

	return page, nil
}

func (s *MovieService) FindByID(ctx context.Context, id int) (*domain.Movie, error) {
	return s.repo.GetById(ctx, id)
}

// FindByDirector fails with ErrRecordNotFound when no director has the given
// name, and returns an empty slice when the director has no movies.
func (s *MovieService) FindByDirector(ctx context.Context, firstName, lastName string) ([]domain.Movie, error) {
	exists, err := s.directors.ExistsByName(ctx, firstName, lastName)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, fmt.Errorf("director %s %s: %w", firstName, lastName, domain.ErrRecordNotFound)
	}

	return s.repo.GetByDirector(ctx, firstName, lastName)
}

func (s *MovieService) Create(ctx context.Context, movie *domain.Movie, image *domain.Image) error {
	ctx, span := tracer.Start(ctx, "MovieService.Create")
	defer span.End()

	director, err := s.directors.FindByID(ctx, movie.DirectorID)
	if err != nil {
		return fmt.Errorf("director %d: %w", movie.DirectorID, err)
	}

	movie.ImageKey, err = s.images.save(ctx, movieImagePrefix, image)
	if err != nil {
		return err
	}

	err = s.repo.Create(ctx, movie)
	if err != nil {
		s.images.discard(ctx, movie.ImageKey)
		return err
	}

	movie.DirectorName = director.FullName()
	s.directors.Evict(ctx, movie.DirectorID)

	s.logger.Info("created movie", "id", movie.ID, "directorId", movie.DirectorID)

	return nil
}

func (s *MovieService) Update(
	ctx context.Context,
	id int,
	upd domain.MovieUpdate,
	image *domain.Image) (*domain.Movie, error) {

	ctx, span := tracer.Start(ctx, "MovieService.Update")
	defer span.End()

	var err error

	upd.ImageKey, err = s.images.save(ctx, movieImagePrefix, image)
	if err != nil {
		return nil, err
	}

	movie, previous, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		s.images.discard(ctx, upd.ImageKey)
		return nil, err
	}

	s.images.discard(ctx, previous)
	s.directors.Evict(ctx, movie.DirectorID)

	s.logger.Info("updated movie", "id", movie.ID)

	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id int) (*domain.Movie, error) {
	ctx, span := tracer.Start(ctx, "MovieService.Delete")
	defer span.End()

	movie, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.images.discard(ctx, movie.ImageKey)
	s.directors.Evict(ctx, movie.DirectorID)

	s.logger.Info("deleted movie", "id", movie.ID)

	return movie, nil
}

func (s *MovieService) Image(ctx context.Context, id int) (*domain.Image, error) {
	movie, err := s.repo.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.images.load(ctx, movie.ImageKey)
}
