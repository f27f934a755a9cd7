package query

import (
	"fmt"
	"strings"
)

// Field is one of the movie attributes a listing can be filtered by.
type Field int

const (
	FieldGenre Field = iota + 1
	FieldRating
	FieldReleaseDate
)

// fieldNames maps lower-cased request names onto fields. Both "released" and
// "releaseDate" address the release date.
var fieldNames = map[string]Field{
	"genre":       FieldGenre,
	"rating":      FieldRating,
	"released":    FieldReleaseDate,
	"releasedate": FieldReleaseDate,
}

// ParseField resolves a request field name, ignoring case.
func ParseField(name string) (Field, error) {
	f, ok := fieldNames[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFilterField, name)
	}

	return f, nil
}

func (f Field) String() string {
	switch f {
	case FieldGenre:
		return "genre"
	case FieldRating:
		return "rating"
	case FieldReleaseDate:
		return "releaseDate"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}
