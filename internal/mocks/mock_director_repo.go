package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/strutynskyi/movie-catalog/internal/domain"
)

type MockDirectorRepo struct {
	mock.Mock
}

func (m *MockDirectorRepo) GetAll(ctx context.Context) ([]domain.Director, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Director), args.Error(1)
}

func (m *MockDirectorRepo) GetById(ctx context.Context, id int) (*domain.Director, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Director), args.Error(1)
}

func (m *MockDirectorRepo) ExistsByName(ctx context.Context, firstName, lastName string) (bool, error) {
	args := m.Called(ctx, firstName, lastName)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectorRepo) Create(ctx context.Context, director *domain.Director) error {
	args := m.Called(ctx, director)
	return args.Error(0)
}

func (m *MockDirectorRepo) Update(
	ctx context.Context,
	id int,
	upd domain.DirectorUpdate) (*domain.Director, *string, error) {

	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	previous, _ := args.Get(1).(*string)
	return args.Get(0).(*domain.Director), previous, args.Error(2)
}

func (m *MockDirectorRepo) Delete(ctx context.Context, id int) (*domain.Director, []string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	keys, _ := args.Get(1).([]string)
	return args.Get(0).(*domain.Director), keys, args.Error(2)
}
