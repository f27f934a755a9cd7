package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/oapi-codegen/runtime/types"
	"github.com/stretchr/testify/mock"
	"github.com/strutynskyi/movie-catalog/api"
	"github.com/strutynskyi/movie-catalog/internal/domain"
	"github.com/strutynskyi/movie-catalog/internal/validator"
)

var testBirthDate = time.Date(1943, time.February, 5, 0, 0, 0, 0, time.UTC)

func testDirector() domain.Director {
	return domain.Director{
		ID:        7,
		FirstName: "Michael",
		LastName:  "Mann",
		BirthDate: &testBirthDate,
		CreatedAt: testCreatedAt,
		UpdatedAt: testCreatedAt,
	}
}

func TestListDirectors(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(d *testDeps)
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.DirectorListResponse
	}{
		{
			name: "directors without movie details",
			setupMocks: func(d *testDeps) {
				d.directorRepo.On("GetAll", mock.Anything).Return([]domain.Director{testDirector()}, nil)
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.DirectorListResponse{
				Directors: []api.DirectorResponse{
					{
						Id:        7,
						FirstName: "Michael",
						LastName:  "Mann",
						BirthDate: &types.Date{Time: testBirthDate},
						CreatedAt: testCreatedAt,
						UpdatedAt: testCreatedAt,
					},
				},
			},
		},
		{
			name: "no directors",
			setupMocks: func(d *testDeps) {
				d.directorRepo.On("GetAll", mock.Anything).Return([]domain.Director{}, nil)
			},
			wantStatus:   http.StatusOK,
			wantResponse: &api.DirectorListResponse{Directors: []api.DirectorResponse{}},
		},
		{
			name: "storage failure",
			setupMocks: func(d *testDeps) {
				d.directorRepo.On("GetAll", mock.Anything).Return(nil, errors.New("pool closed"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, deps := newTestApplication()
			tt.setupMocks(deps)

			w, r := executeRequest(t, http.MethodGet, "/directors", nil)

			app.Routes().ServeHTTP(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("ListDirectors() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response api.DirectorListResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				if err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(tt.wantResponse, &response); diff != "" {
					t.Errorf("ListDirectors() response mismatch (-want +got):\n%s", diff)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func TestGetDirector(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMocks     func(d *testDeps)
		wantStatus     int
		wantErrMessage string
		wantMovies     int
	}{
		{
			name: "served from cache",
			url:  "/directors/7",
			setupMocks: func(d *testDeps) {
				director := testDirector()
				director.Movies = []domain.Movie{testMovie()}
				d.cache.On("Get", mock.Anything, 7).Return(&director, nil)
			},
			wantStatus: http.StatusOK,
			wantMovies: 1,
		},
		{
			name: "loaded from storage on cache miss",
			url:  "/directors/7",
			setupMocks: func(d *testDeps) {
				director := testDirector()
				d.cache.On("Get", mock.Anything, 7).Return(nil, domain.ErrRecordNotFound)
				d.directorRepo.On("GetById", mock.Anything, 7).Return(&director, nil)
				d.movieRepo.On("GetByDirectorId", mock.Anything, 7).Return([]domain.Movie{testMovie(), testMovie()}, nil)
				d.cache.On("Set", mock.Anything, mock.AnythingOfType("*domain.Director")).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantMovies: 2,
		},
		{
			name: "unknown director",
			url:  "/directors/70",
			setupMocks: func(d *testDeps) {
				d.cache.On("Get", mock.Anything, 70).Return(nil, domain.ErrRecordNotFound)
				d.directorRepo.On("GetById", mock.Anything, 70).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:       "non numeric id",
			url:        "/directors/mann",
			setupMocks: func(d *testDeps) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, deps := newTestApplication()
			tt.setupMocks(deps)

			w, r := executeRequest(t, http.MethodGet, tt.url, nil)

			app.Routes().ServeHTTP(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("GetDirector() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var response api.DirectorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				if err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if response.Movies == nil {
					t.Fatal("GetDirector() response has no movies")
				}
				if len(*response.Movies) != tt.wantMovies {
					t.Errorf("GetDirector() returned %d movies, want %d", len(*response.Movies), tt.wantMovies)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})

			deps.cache.AssertExpectations(t)
		})
	}
}

func TestCreateDirector(t *testing.T) {
	tests := []struct {
		name           string
		payload        any
		image          []byte
		setupMocks     func(d *testDeps)
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:    "director with portrait",
			payload: map[string]any{"firstName": "Michael", "lastName": "Mann", "birthDate": "1943-02-05"},
			image:   pngHeader,
			setupMocks: func(d *testDeps) {
				d.images.On("Put", mock.Anything, mock.AnythingOfType("*domain.Image")).Return(nil)
				d.directorRepo.On("Create", mock.Anything, mock.MatchedBy(func(dir *domain.Director) bool {
					return dir.FirstName == "Michael" && dir.BirthDate != nil && dir.BirthDate.Equal(testBirthDate)
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Director).ID = 7
				}).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:           "missing last name",
			payload:        map[string]any{"firstName": "Michael"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrRequired,
		},
		{
			name: "birth date in the future",
			payload: map[string]any{
				"firstName": "Michael",
				"lastName":  "Mann",
				"birthDate": time.Now().AddDate(0, 0, 2).Format(time.DateOnly),
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrPastDate,
		},
		{
			name:       "malformed birth date",
			payload:    map[string]any{"firstName": "Michael", "lastName": "Mann", "birthDate": "05/02/1943"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "duplicate director",
			payload: map[string]any{"firstName": "Michael", "lastName": "Mann"},
			setupMocks: func(d *testDeps) {
				d.directorRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDirectorAlreadyExists)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrDirectorAlreadyExists.Error(),
		},
		{
			name:    "portrait is discarded when the insert fails",
			payload: map[string]any{"firstName": "Michael", "lastName": "Mann"},
			image:   pngHeader,
			setupMocks: func(d *testDeps) {
				d.images.On("Put", mock.Anything, mock.AnythingOfType("*domain.Image")).Return(nil)
				d.directorRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDirectorAlreadyExists)
				d.images.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool {
					return len(key) > len("directors/")
				})).Return(nil)
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: domain.ErrDirectorAlreadyExists.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, deps := newTestApplication()
			if tt.setupMocks != nil {
				tt.setupMocks(deps)
			}

			w, r := executeMultipart(t, http.MethodPost, "/directors", tt.payload, tt.image)

			app.Routes().ServeHTTP(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Fatalf("CreateDirector() status = %v, want %v (body: %s)", got, tt.wantStatus, w.Body.String())
			}

			if tt.wantStatus == http.StatusCreated {
				if got := w.Header().Get("Location"); got != "/directors/7" {
					t.Errorf("Location = %q, want /directors/7", got)
				}

				var response api.DirectorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				if err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if !response.HasImage || response.Movies == nil || len(*response.Movies) != 0 {
					t.Errorf("CreateDirector() response = %+v", response)
				}
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})

			deps.directorRepo.AssertExpectations(t)
			deps.images.AssertExpectations(t)
		})
	}
}

func TestUpdateDirector(t *testing.T) {
	app, deps := newTestApplication()

	previousKey := "directors/old"
	updated := testDirector()
	updated.LastName = "K. Mann"

	deps.directorRepo.On("Update", mock.Anything, 7, mock.MatchedBy(func(upd domain.DirectorUpdate) bool {
		return upd.LastName == "K. Mann" && upd.BirthDate == nil && upd.ImageKey != nil
	})).Return(&updated, &previousKey, nil)
	deps.images.On("Put", mock.Anything, mock.AnythingOfType("*domain.Image")).Return(nil)
	deps.images.On("Delete", mock.Anything, previousKey).Return(nil)
	deps.cache.On("Evict", mock.Anything, 7).Return(nil)
	deps.movieRepo.On("GetByDirectorId", mock.Anything, 7).Return([]domain.Movie{testMovie()}, nil)

	w, r := executeMultipart(t, http.MethodPut, "/directors/7",
		map[string]any{"firstName": "Michael", "lastName": "K. Mann"}, pngHeader)

	app.Routes().ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("UpdateDirector() status = %v, want %v (body: %s)", w.Code, http.StatusOK, w.Body.String())
	}

	var response api.DirectorResponse
	err := json.NewDecoder(w.Body).Decode(&response)
	if err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.LastName != "K. Mann" || response.Movies == nil || len(*response.Movies) != 1 {
		t.Errorf("UpdateDirector() response = %+v", response)
	}

	deps.images.AssertExpectations(t)
	deps.cache.AssertExpectations(t)
}

func TestDeleteDirector(t *testing.T) {
	t.Run("removes director and images", func(t *testing.T) {
		app, deps := newTestApplication()

		director := testDirector()
		deps.directorRepo.On("Delete", mock.Anything, 7).
			Return(&director, []string{"directors/portrait", "movies/heat"}, nil)
		deps.images.On("Delete", mock.Anything, "directors/portrait").Return(nil)
		deps.images.On("Delete", mock.Anything, "movies/heat").Return(errors.New("bucket unavailable"))
		deps.cache.On("Evict", mock.Anything, 7).Return(nil)

		w, r := executeRequest(t, http.MethodDelete, "/directors/7", nil)

		app.Routes().ServeHTTP(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("DeleteDirector() status = %v, want %v", w.Code, http.StatusOK)
		}

		var response api.MessageResponse
		err := json.NewDecoder(w.Body).Decode(&response)
		if err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if response.Message != "Director deleted successfully" {
			t.Errorf("DeleteDirector() message = %q", response.Message)
		}

		deps.images.AssertExpectations(t)
	})

	t.Run("unknown director", func(t *testing.T) {
		app, deps := newTestApplication()

		deps.directorRepo.On("Delete", mock.Anything, 70).Return(nil, nil, domain.ErrRecordNotFound)

		w, r := executeRequest(t, http.MethodDelete, "/directors/70", nil)

		app.Routes().ServeHTTP(w, r)

		if w.Code != http.StatusNotFound {
			t.Errorf("DeleteDirector() status = %v, want %v", w.Code, http.StatusNotFound)
		}
	})
}
