package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance. Field names in its errors are
// the JSON names of the struct fields, and it knows the "notblank" tag.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	// notblank rejects strings made only of whitespace.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return true
		}
		return strings.TrimSpace(field.String()) != ""
	})

	return v
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// FieldMessageFunc returns the client-facing message for one failed field.
type FieldMessageFunc func(fe validator.FieldError) string

// FieldErrors flattens validator errors into a map of JSON field name to
// message, keeping the first failure per field. It returns nil if err does
// not come from the validator.
func FieldErrors(err error, message FieldMessageFunc) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fields := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		if message == nil {
			fields[fe.Field()] = "is invalid"
			continue
		}
		fields[fe.Field()] = message(fe)
	}
	return fields
}
