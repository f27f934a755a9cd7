package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/strutynskyi/movie-catalog/api"
	"github.com/strutynskyi/movie-catalog/internal/domain"
)

func (app *Application) ListDirectors(w http.ResponseWriter, r *http.Request) {
	directors, err := app.directors.FindAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.DirectorListResponse{
		Directors: make([]api.DirectorResponse, len(directors)),
	}

	for i := range directors {
		resp.Directors[i] = toDirectorResponse(&directors[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetDirector(w http.ResponseWriter, r *http.Request, id api.Id) {
	director, err := app.directors.FindByID(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toDirectorResponse(director), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetDirectorImage(w http.ResponseWriter, r *http.Request, id api.Id) {
	image, err := app.directors.Image(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	app.writeImage(w, image)
}

func (app *Application) CreateDirector(w http.ResponseWriter, r *http.Request) {
	var input api.DirectorRequest

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

	director := &domain.Director{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		BirthDate: fromApiDate(input.BirthDate),
	}

	err = app.directors.Create(r.Context(), director, image)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/directors/%d", director.ID))

	err = app.writeJSON(w, http.StatusCreated, toDirectorResponse(director), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateDirector(w http.ResponseWriter, r *http.Request, id api.Id) {
	var input api.DirectorRequest

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

	upd := domain.DirectorUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		BirthDate: fromApiDate(input.BirthDate),
	}

	director, err := app.directors.Update(r.Context(), id, upd, image)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toDirectorResponse(director), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteDirector(w http.ResponseWriter, r *http.Request, id api.Id) {
	_, err := app.directors.Delete(r.Context(), id)
	if err != nil {
		app.handleError(w, r, err)
		return
	}

	resp := api.MessageResponse{
		Message: "Director deleted successfully",
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func fromApiDate(date *types.Date) *time.Time {
	if date == nil {
		return nil
	}

	t := date.Time
	return &t
}

// toDirectorResponse includes movie summaries only when the director was
// loaded with its movies.
func toDirectorResponse(director *domain.Director) api.DirectorResponse {
	if director == nil {
		return api.DirectorResponse{}
	}

	resp := api.DirectorResponse{
		Id:        director.ID,
		FirstName: director.FirstName,
		LastName:  director.LastName,
		HasImage:  director.ImageKey != nil,
		CreatedAt: director.CreatedAt,
		UpdatedAt: director.UpdatedAt,
	}

	if director.BirthDate != nil {
		resp.BirthDate = &types.Date{Time: *director.BirthDate}
	}

	if director.Movies != nil {
		movies := toMovieSummaries(director.Movies)
		resp.Movies = &movies
	}

	return resp
}
