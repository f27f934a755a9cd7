package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/strutynskyi/movie-catalog/internal/domain"
)

type MockDirectorCache struct {
	mock.Mock
}

func (m *MockDirectorCache) Get(ctx context.Context, id int) (*domain.Director, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Director), args.Error(1)
}

func (m *MockDirectorCache) Set(ctx context.Context, director *domain.Director) error {
	args := m.Called(ctx, director)
	return args.Error(0)
}

func (m *MockDirectorCache) Evict(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
