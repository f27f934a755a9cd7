package app

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/strutynskyi/movie-catalog/api"
	"github.com/strutynskyi/movie-catalog/internal/catalog"
	"github.com/strutynskyi/movie-catalog/internal/config"
	"github.com/strutynskyi/movie-catalog/internal/mocks"
	"github.com/strutynskyi/movie-catalog/internal/query"
	"github.com/strutynskyi/movie-catalog/internal/validator"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type testDeps struct {
	movieRepo    *mocks.MockMovieRepo
	directorRepo *mocks.MockDirectorRepo
	cache        *mocks.MockDirectorCache
	images       *mocks.MockImageStore
}

func testConfig() config.Config {
	return config.Config{
		Env: "test",
		Images: config.ImagesConfig{
			Store:   config.ImageStorePostgres,
			MaxSize: 1 << 10,
		},
		Filtering: config.FilteringConfig{
			Enabled:       true,
			AllowedFields: []string{"genre", "rating", "released"},
		},
		Pagination: config.PaginationConfig{
			DefaultPageNumber: 0,
			DefaultPageSize:   10,
			MaxPageSize:       50,
		},
		CORS: config.CORSConfig{
			AllowedOrigin: "https://catalog.example.com",
		},
	}
}

// newTestApplication builds the real catalog services over mocked stores.
func newTestApplication(opts ...func(*config.Config)) (*Application, *testDeps) {
	cfg := testConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	deps := &testDeps{
		movieRepo:    new(mocks.MockMovieRepo),
		directorRepo: new(mocks.MockDirectorRepo),
		cache:        new(mocks.MockDirectorCache),
		images:       new(mocks.MockImageStore),
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	planner := query.NewPlanner(
		query.NewGate(cfg.Filtering.Enabled, cfg.Filtering.AllowedFields),
		cfg.PaginationConfig(),
	)

	directors := catalog.NewDirectorService(deps.directorRepo, deps.movieRepo, deps.cache, deps.images, logger)
	movies := catalog.NewMovieService(deps.movieRepo, directors, deps.images, planner, logger)

	app := NewApp(cfg, logger, validator.NewValidator(), movies, directors)

	return app, deps
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()

	return w, r
}

// executeMultipart builds a multipart request with a JSON payload part and an
// optional image part.
func executeMultipart(t *testing.T, method, url string, payload any, image []byte) (*httptest.ResponseRecorder, *http.Request) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if payload != nil {
		var data []byte

		switch p := payload.(type) {
		case string:
			data = []byte(p)
		default:
			var err error
			data, err = json.Marshal(p)
			if err != nil {
				t.Fatal(err)
			}
		}

		err := mw.WriteField(payloadPart, string(data))
		if err != nil {
			t.Fatal(err)
		}
	}

	if image != nil {
		part, err := mw.CreateFormFile(imagePart, "poster.png")
		if err != nil {
			t.Fatal(err)
		}
		_, err = part.Write(image)
		if err != nil {
			t.Fatal(err)
		}
	}

	err := mw.Close()
	if err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(method, url, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp api.ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}

	default:
		var errorResp api.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
