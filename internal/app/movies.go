package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"github.com/strutynskyi/movie-catalog/api"
	"github.com/strutynskyi/movie-catalog/internal/domain"
	"github.com/strutynskyi/movie-catalog/internal/query"
)

// reservedListParams are the ListMovies query parameters that are not
// treated as filters.
var reservedListParams = map[string]struct{}{
	"pageNo":      {},
	"pageSize":    {},
	"filterField": {},
	"filterValue": {},
}

func (app *Application) ListMovies(w http.ResponseWriter, r *http.Request, params api.ListMoviesParams) {
	req := query.Request{
		Filters:  bulkFilters(r.URL.Query()),
		PageNo:   params.PageNo,
		PageSize: params.PageSize,
	}

	if params.FilterField != nil {
		if params.FilterValue == nil {
			app.badRequestResponse(w, r, errors.New("filterValue is required when filterField is set"))
			return
		}

		req.Required = &query.Filter{
			Field: *params.FilterField,
			Value: *params.FilterValue,
		}
	}

	page, err := app.movies.FindAll(r.Context(), req)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.MoviePageResponse{
		Movies:        toMovieResponses(page.Items),
		PageNo:        page.PageNo,
		PageSize:      page.PageSize,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bulkFilters collects every non-reserved query parameter as a filter. Only
// the first value of a repeated parameter is used.
func bulkFilters(values url.Values) map[string]string {
	filters := make(map[string]string, len(values))

	for key, vals := range values {
		if _, reserved := reservedListParams[key]; reserved || len(vals) == 0 {
			continue
		}
		filters[key] = vals[0]
	}

	return filters
}

func (app *Application) GetMoviesByDirector(w http.ResponseWriter, r *http.Request, params api.GetMoviesByDirectorParams) {
	movies, err := app.movies.FindByDirector(r.Context(), params.FirstName, params.LastName)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: toMovieResponses(movies),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request, id api.Id) {
	movie, err := app.movies.FindByID(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieImage(w http.ResponseWriter, r *http.Request, id api.Id) {
	image, err := app.movies.Image(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeImage(w, image)
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

	image, err := app.readMultipart(w, r, &input)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := &domain.Movie{
		Title:       input.Title,
		Genre:       input.Genre,
		ReleaseDate: input.ReleaseDate.Time,
		Duration:    input.Duration,
		Rating:      toRating(input.Rating),
		DirectorID:  input.DirectorId,
	}

	err = app.movies.Create(r.Context(), movie, image)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%d", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request, id api.Id) {
	var input api.UpdateMovieRequest

	image, err := app.readMultipart(w, r, &input)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	upd := domain.MovieUpdate{
		Title:       input.Title,
		Genre:       input.Genre,
		ReleaseDate: input.ReleaseDate.Time,
		Duration:    input.Duration,
		Rating:      toRating(input.Rating),
	}

	movie, err := app.movies.Update(r.Context(), id, upd, image)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request, id api.Id) {
	_, err := app.movies.Delete(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.MessageResponse{
		Message: "Movie deleted successfully",
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// toRating keeps a single fractional digit, matching the stored precision.
func toRating(rating float64) decimal.Decimal {
	return decimal.NewFromFloat(rating).Round(1)
}

func toMovieResponses(movies []domain.Movie) []api.MovieResponse {
	responses := make([]api.MovieResponse, len(movies))

	for i := range movies {
		responses[i] = toMovieResponse(&movies[i])
	}

	return responses
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	if movie == nil {
		return api.MovieResponse{}
	}

	return api.MovieResponse{
		Id:           movie.ID,
		Title:        movie.Title,
		Genre:        movie.Genre,
		ReleaseDate:  types.Date{Time: movie.ReleaseDate},
		Duration:     movie.Duration,
		Rating:       movie.Rating.InexactFloat64(),
		DirectorId:   movie.DirectorID,
		DirectorName: movie.DirectorName,
		HasImage:     movie.ImageKey != nil,
		CreatedAt:    movie.CreatedAt,
		UpdatedAt:    movie.UpdatedAt,
	}
}

func toMovieSummaries(movies []domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))

	for i, movie := range movies {
		summaries[i] = api.MovieSummary{
			Id:          movie.ID,
			Title:       movie.Title,
			Genre:       movie.Genre,
			ReleaseDate: types.Date{Time: movie.ReleaseDate},
			Rating:      movie.Rating.InexactFloat64(),
		}
	}

	return summaries
}
