package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/strutynskyi/movie-catalog/internal/domain"
	"github.com/strutynskyi/movie-catalog/internal/mocks"
)

type DirectorServiceTestSuite struct {
	suite.Suite
	directorRepo *mocks.MockDirectorRepo
	movieRepo    *mocks.MockMovieRepo
	cache        *mocks.MockDirectorCache
	images       *mocks.MockImageStore
	service      *DirectorService
}

func (s *DirectorServiceTestSuite) SetupTest() {
	s.directorRepo = new(mocks.MockDirectorRepo)
	s.movieRepo = new(mocks.MockMovieRepo)
	s.cache = new(mocks.MockDirectorCache)
	s.images = new(mocks.MockImageStore)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewDirectorService(s.directorRepo, s.movieRepo, s.cache, s.images, logger)
}

func TestDirectorServiceSuite(t *testing.T) {
	suite.Run(t, new(DirectorServiceTestSuite))
}

func testDirector() *domain.Director {
	return &domain.Director{ID: 7, FirstName: "Michael", LastName: "Mann"}
}

func (s *DirectorServiceTestSuite) TestFindByID() {
	tests := []struct {
		name       string
		setupMocks func()
		wantMovies int
		wantErr    error
	}{
		{
			name: "cache hit skips the database",
			setupMocks: func() {
				cached := testDirector()
				cached.Movies = []domain.Movie{testMovie()}
				s.cache.On("Get", mock.Anything, 7).Return(cached, nil)
			},
			wantMovies: 1,
		},
		{
			name: "cache miss loads and caches",
			setupMocks: func() {
				s.cache.On("Get", mock.Anything, 7).Return(nil, domain.ErrRecordNotFound)
				s.directorRepo.On("GetById", mock.Anything, 7).Return(testDirector(), nil)
				s.movieRepo.On("GetByDirectorId", mock.Anything, 7).Return([]domain.Movie{testMovie(), testMovie()}, nil)
				s.cache.On("Set", mock.Anything, mock.AnythingOfType("*domain.Director")).Return(nil)
			},
			wantMovies: 2,
		},
		{
			name: "cache failure falls back to the database",
			setupMocks: func() {
				s.cache.On("Get", mock.Anything, 7).Return(nil, errors.New("redis: connection refused"))
				s.directorRepo.On("GetById", mock.Anything, 7).Return(testDirector(), nil)
				s.movieRepo.On("GetByDirectorId", mock.Anything, 7).Return([]domain.Movie{}, nil)
				s.cache.On("Set", mock.Anything, mock.Anything).Return(errors.New("redis: connection refused"))
			},
			wantMovies: 0,
		},
		{
			name: "missing director",
			setupMocks: func() {
				s.cache.On("Get", mock.Anything, 7).Return(nil, domain.ErrRecordNotFound)
				s.directorRepo.On("GetById", mock.Anything, 7).Return(nil, domain.ErrRecordNotFound)
			},
			wantErr: domain.ErrRecordNotFound,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			tt.setupMocks()

			got, err := s.service.FindByID(context.Background(), 7)

			if tt.wantErr != nil {
				s.ErrorIs(err, tt.wantErr)
				s.cache.AssertNotCalled(s.T(), "Set", mock.Anything, mock.Anything)
				return
			}

			s.Require().NoError(err)
			s.Len(got.Movies, tt.wantMovies)
			s.cache.AssertExpectations(s.T())
			s.directorRepo.AssertExpectations(s.T())
		})
	}
}

func (s *DirectorServiceTestSuite) TestCreate() {
	s.Run("duplicate director keeps no image behind", func() {
		s.SetupTest()
		director := testDirector()
		image := &domain.Image{Name: "mann.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}

		s.images.On("Put", mock.Anything, image).Return(nil)
		s.directorRepo.On("Create", mock.Anything, director).Return(domain.ErrDirectorAlreadyExists)
		s.images.On("Delete", mock.Anything, mock.Anything).Return(nil)

		err := s.service.Create(context.Background(), director, image)

		s.ErrorIs(err, domain.ErrDirectorAlreadyExists)
		s.images.AssertCalled(s.T(), "Delete", mock.Anything, image.Key)
	})

	s.Run("without image", func() {
		s.SetupTest()
		director := testDirector()

		s.directorRepo.On("Create", mock.Anything, director).Return(nil)

		err := s.service.Create(context.Background(), director, nil)

		s.Require().NoError(err)
		s.Nil(director.ImageKey)
		s.NotNil(director.Movies)
		s.images.AssertNotCalled(s.T(), "Put", mock.Anything, mock.Anything)
	})
}

func (s *DirectorServiceTestSuite) TestUpdate() {
	updated := testDirector()
	oldKey := "directors/old"
	image := &domain.Image{Name: "mann.jpg", ContentType: "image/jpeg", Data: []byte("jpg")}

	s.images.On("Put", mock.Anything, image).Return(nil)
	s.directorRepo.On("Update", mock.Anything, 7, mock.Anything).Return(updated, &oldKey, nil)
	s.images.On("Delete", mock.Anything, oldKey).Return(nil)
	s.cache.On("Evict", mock.Anything, 7).Return(nil)
	s.movieRepo.On("GetByDirectorId", mock.Anything, 7).Return([]domain.Movie{testMovie()}, nil)

	got, err := s.service.Update(context.Background(), 7, domain.DirectorUpdate{FirstName: "Michael", LastName: "Mann"}, image)

	s.Require().NoError(err)
	s.Len(got.Movies, 1)
	s.images.AssertExpectations(s.T())
	s.cache.AssertExpectations(s.T())
}

func (s *DirectorServiceTestSuite) TestDelete() {
	s.Run("removes every referenced image", func() {
		s.SetupTest()
		keys := []string{"movies/a", "movies/b", "directors/c"}

		s.directorRepo.On("Delete", mock.Anything, 7).Return(testDirector(), keys, nil)
		for _, key := range keys {
			s.images.On("Delete", mock.Anything, key).Return(nil).Once()
		}
		s.cache.On("Evict", mock.Anything, 7).Return(errors.New("redis: timeout"))

		got, err := s.service.Delete(context.Background(), 7)

		s.Require().NoError(err)
		s.Equal(7, got.ID)
		s.images.AssertExpectations(s.T())
		s.cache.AssertExpectations(s.T())
	})

	s.Run("missing director", func() {
		s.SetupTest()
		s.directorRepo.On("Delete", mock.Anything, 9).Return(nil, nil, domain.ErrRecordNotFound)

		_, err := s.service.Delete(context.Background(), 9)

		s.ErrorIs(err, domain.ErrRecordNotFound)
		s.cache.AssertNotCalled(s.T(), "Evict", mock.Anything, mock.Anything)
	})
}
