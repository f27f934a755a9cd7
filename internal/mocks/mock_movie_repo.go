package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/strutynskyi/movie-catalog/internal/domain"
	"github.com/strutynskyi/movie-catalog/internal/query"
)

type MockMovieRepo struct {
	mock.Mock
}

func (m *MockMovieRepo) FindAll(
	ctx context.Context,
	pred query.Predicate,
	window query.Window) (*domain.Page[domain.Movie], error) {

	args := m.Called(ctx, pred, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Page[domain.Movie]), args.Error(1)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}

func (m *MockMovieRepo) GetByDirector(ctx context.Context, firstName, lastName string) ([]domain.Movie, error) {
	args := m.Called(ctx, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepo) GetByDirectorId(ctx context.Context, directorID int) ([]domain.Movie, error) {
	args := m.Called(ctx, directorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movie), args.Error(1)
}

func (m *MockMovieRepo) Create(ctx context.Context, movie *domain.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepo) Update(ctx context.Context, id int, upd domain.MovieUpdate) (*domain.Movie, *string, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	previous, _ := args.Get(1).(*string)
	return args.Get(0).(*domain.Movie), previous, args.Error(2)
}

func (m *MockMovieRepo) Delete(ctx context.Context, id int) (*domain.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movie), args.Error(1)
}
