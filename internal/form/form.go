// Package form validates user input before it is sent anywhere.
//
// Each form is a struct whose validate tags are its schema. Validation
// yields at most one message per field, keyed by the field's form name.
// Rules that span fields run only once every field rule has passed.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field name to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, fe[f]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Field returns the message for one field, or "".
func (fe FieldErrors) Field(name string) string {
	return fe[name]
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// messages maps "field.tag" to the text shown for that failure.
type messages map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// check runs the struct's tag rules and converts failures to FieldErrors.
func check(s any, msgs messages) FieldErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_form": err.Error()}
	}

	fe := FieldErrors{}
	for _, ve := range verrs {
		field := ve.Field()
		if _, seen := fe[field]; seen {
			continue
		}
		if msg, ok := msgs[field+"."+ve.Tag()]; ok {
			fe[field] = msg
			continue
		}
		fe[field] = fmt.Sprintf("failed %s validation", ve.Tag())
	}
	return fe
}

func orNil(fe FieldErrors) FieldErrors {
	if len(fe) == 0 {
		return nil
	}
	return fe
}
