package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// malformedRequestError carries a client facing description of a request
// that could not be decoded.
type malformedRequestError struct {
	msg string
}

func (e *malformedRequestError) Error() string {
	return e.msg
}

func malformed(format string, args ...any) error {
	return &malformedRequestError{msg: fmt.Sprintf(format, args...)}
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}

	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)

	return nil
}

// decodeJSON decodes a single JSON object into dst, rejecting unknown fields
// and trailing data.
func decodeJSON(data []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var (
			syntaxError        *json.SyntaxError
			unmarshalTypeError *json.UnmarshalTypeError
		)

		switch {
		case errors.As(err, &syntaxError):
			return malformed("payload contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return malformed("payload contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return malformed("payload contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return malformed("payload contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return malformed("payload must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return malformed("payload contains unknown key %s", fieldName)
		default:
			// date fields report their own parse errors
			return malformed("payload is invalid: %s", err.Error())
		}
	}

	err = dec.Decode(&struct{}{})
	if !errors.Is(err, io.EOF) {
		return malformed("payload must only contain a single JSON value")
	}

	return nil
}
