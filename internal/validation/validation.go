// Package validation evaluates struct tag constraints of request shapes and
// reports them as field keyed messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// InvalidValue is the message used for constraints without a dedicated message.
const InvalidValue = "Invalid value."

// messages maps a validator tag to a message format.
// The first verb receives the field name, the second the tag parameter.
var messages = map[string]string{ //nolint:gochecknoglobals
	"required":  "The %[1]s field is required.",
	"max":       "%[1]s should not be more than %[2]s characters.",
	"min":       "%[1]s should be at least %[2]s characters.",
	"len":       "%[1]s must be exactly %[2]s characters.",
	"email":     "%[1]s is not a valid email address.",
	"uppercase": "%[1]s must be upper case.",
	"alpha":     "%[1]s must only contain letters.",
	"uuid":      "%[1]s is not a valid identifier.",
}

// Validator wraps a configured go-playground validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator keying errors by the json name of a field.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		default:
			return name
		}
	})

	// decimals are validated by their string form
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}

		return nil
	}, decimal.Decimal{})

	return &Validator{validate: v}
}

// Fields validates s and returns one message per failing field, or nil if s is valid.
// An error is returned if s can not be validated at all, e.g. because it is not a struct.
func (v *Validator) Fields(s any) (map[string]string, error) {
	err := v.validate.Struct(s)
	if err == nil {
		return nil, nil //nolint:nilnil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, fmt.Errorf("validate %T: %w", s, err)
	}

	fieldErrors := make(map[string]string, len(validationErrors))

	for _, ve := range validationErrors {
		key := ve.Field()
		if _, seen := fieldErrors[key]; seen {
			continue
		}

		fieldErrors[key] = Message(ve)
	}

	return fieldErrors, nil
}

// Message renders the message of a single field error.
func Message(fe validator.FieldError) string {
	format, ok := messages[fe.Tag()]
	if !ok {
		return InvalidValue
	}

	// the length messages only make sense for strings
	if fe.Kind() != reflect.String && fe.Tag() != "required" && fe.Tag() != "email" {
		return InvalidValue
	}

	return fmt.Sprintf(format, fe.StructField(), fe.Param())
}
