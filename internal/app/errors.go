package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/strutynskyi/movie-catalog/api"
	"github.com/strutynskyi/movie-catalog/internal/domain"
	"github.com/strutynskyi/movie-catalog/internal/query"
	appvalidator "github.com/strutynskyi/movie-catalog/internal/validator"
)

const (
	ErrInternalServer   = "The server encountered a problem and could not process your request"
	ErrNotFound         = "The requested resource not found"
	ErrMethodNotAllowed = "The %s method is not supported for this resource"
	ErrFailedValidation = "One or more fields have invalid values"
	ErrImageTooLarge    = "The image exceeds the maximum allowed size of %d bytes"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, fmt.Sprintf(ErrMethodNotAllowed, r.Method))
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) conflictResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.badRequestResponse(w, r, err)
		return
	}

	resp := api.ValidationErrorResponse{
		Message:          ErrFailedValidation,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: make([]api.ValidationError, 0, len(validationErrors)),
	}

	for _, fieldErr := range validationErrors {
		resp.ValidationErrors = append(resp.ValidationErrors, api.ValidationError{
			Field: fieldErr.Field(),
			Issue: appvalidator.ValidationMessage(fieldErr),
		})
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// paramErrorResponse handles malformed or missing path and query parameters
// reported by the generated router.
func (app *Application) paramErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.badRequestResponse(w, r, err)
}

// handleError maps domain and query errors to their HTTP responses. Anything
// unrecognised is reported as an internal error.
func (app *Application) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var malformed *malformedRequestError

	switch {
	case errors.As(err, &malformed),
		errors.Is(err, query.ErrInvalidFilterField),
		errors.Is(err, query.ErrInvalidFilterValue),
		errors.Is(err, query.ErrInvalidPageNumber),
		errors.Is(err, query.ErrInvalidPageSize),
		errors.Is(err, query.ErrPageOutOfRange):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrRecordNotFound), errors.Is(err, domain.ErrImageNotFound):
		app.notFoundResponse(w, r)
	case errors.Is(err, domain.ErrMovieAlreadyExists), errors.Is(err, domain.ErrDirectorAlreadyExists):
		app.conflictResponse(w, r, err)
	case errors.Is(err, domain.ErrUnsupportedImage):
		app.errorResponse(w, r, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, domain.ErrImageTooLarge):
		app.errorResponse(w, r, http.StatusRequestEntityTooLarge, fmt.Sprintf(ErrImageTooLarge, app.config.Images.MaxSize))
	default:
		app.serverErrorResponse(w, r, err)
	}
}
