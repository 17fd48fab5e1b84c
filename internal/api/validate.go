package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Optional patch fields arrive as non-nil pointers to "" when cleared,
	// which omitempty does not skip.
	v.RegisterAlias("hexcolor_or_empty", "eq=|hexcolor")
	v.RegisterAlias("url_or_empty", "eq=|url")
	return v
}

// Decode reads a JSON body into dst and validates it. On failure it writes
// the 400 response itself and returns false.
func Decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			Error(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			ValidationFailed(w, []FieldError{{Message: "request body is required"}})
		default:
			ValidationFailed(w, []FieldError{{Message: "invalid JSON body"}})
		}
		return false
	}

	if errs := Validate(dst); len(errs) > 0 {
		ValidationFailed(w, errs)
		return false
	}
	return true
}

// Validate runs struct tag validation and returns one FieldError per failure
func Validate(v interface{}) []FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "hexcolor", "hexcolor_or_empty":
		return fmt.Sprintf("%s must be a hex color", fe.Field())
	case "url", "url_or_empty":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
