package query

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

var yearRgx = regexp.MustCompile(`^\d{4}$`)

// BuildNamed resolves name with ParseField and builds its predicate.
func BuildNamed(name, value string) (Predicate, error) {
	field, err := ParseField(name)
	if err != nil {
		return nil, err
	}

	return Build(field, value)
}

// Build converts a raw filter value into a predicate for field.
//
// Genre values match as substrings, so "Drama" matches "Drama" as well as
// "Crime Drama". Release dates accept either a bare year or a full ISO date.
func Build(field Field, value string) (Predicate, error) {
	switch field {
	case FieldGenre:
		return Contains{Field: field, Value: value}, nil

	case FieldRating:
		rating, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(rating) || math.IsInf(rating, 0) {
			return nil, fmt.Errorf("%w: %s must be a number, got %q", ErrInvalidFilterValue, field, value)
		}
		return NumberEquals{Field: field, Value: rating}, nil

	case FieldReleaseDate:
		if yearRgx.MatchString(value) {
			year, _ := strconv.Atoi(value)
			return YearEquals{Field: field, Year: year}, nil
		}

		date, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a year (YYYY) or a date (YYYY-MM-DD), got %q",
				ErrInvalidFilterValue, field, value)
		}
		return DateEquals{Field: field, Date: date}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidFilterField, field)
	}
}
