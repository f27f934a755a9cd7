package validator

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

const (
	ErrRequired  = "is required"
	ErrMinLength = "must be at least %s"
	ErrMaxLength = "must be at most %s"
	ErrOneOf     = "must be one of: %s"
	ErrAlpha     = "must contain only letters"
	ErrRating    = "must be between 0 and 10 with at most one decimal place"
	ErrPastDate  = "must not be in the future"
	ErrInvalid   = "is invalid"
)

var (
	minRating = decimal.Zero
	maxRating = decimal.NewFromInt(10)
)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("rating", validateRating)
	validator.RegisterValidation("past_date", validatePastDate)

	// report fields by their JSON names
	validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return validator
}

// validateRating accepts values in [0, 10] with a single fractional digit,
// which is what the rating column stores.
func validateRating(fl validator.FieldLevel) bool {
	value := fl.Field().Float()
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}

	rating := decimal.NewFromFloat(value)
	if rating.LessThan(minRating) || rating.GreaterThan(maxRating) {
		return false
	}

	return rating.Equal(rating.Round(1))
}

func validatePastDate(fl validator.FieldLevel) bool {
	var date time.Time

	switch v := fl.Field().Interface().(type) {
	case openapi_types.Date:
		date = v.Time
	case time.Time:
		date = v
	default:
		return false
	}

	return !date.After(time.Now())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "oneof":
		return fmt.Sprintf(ErrOneOf, err.Param())
	case "alpha", "alphaunicode":
		return ErrAlpha
	case "rating":
		return ErrRating
	case "past_date":
		return ErrPastDate
	default:
		return ErrInvalid
	}
}
