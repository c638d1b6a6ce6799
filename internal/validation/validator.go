// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide. It registers the
// catalog rules "username" and "slug", and reports fields by their CSV column
// name (the `csv` struct tag) so messages match the source files.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ReservedUsername is rejected as a username.
const ReservedUsername = "me"

var (
	validate     *validator.Validate
	validateOnce sync.Once

	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// FieldError is a single field validation failure.
type FieldError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

// Field returns the column name that failed validation.
func (e FieldError) Field() string { return e.field }

// Tag returns the validation tag that failed.
func (e FieldError) Tag() string { return e.tag }

// Param returns the parameter for the validation tag (e.g., "150" for "max=150").
func (e FieldError) Param() string { return e.param }

// Value returns the actual value that failed validation.
func (e FieldError) Value() any { return e.value }

// Error returns a human-readable error message.
func (e FieldError) Error() string { return e.message }

// Error is a collection of field validation failures.
type Error struct {
	fields []FieldError
}

// Fields returns the individual failures.
func (e *Error) Fields() []FieldError {
	return e.fields
}

// Error implements the error interface, returning a combined error message.
func (e *Error) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.fields))
	for i, f := range e.fields {
		messages[i] = f.Error()
	}
	return strings.Join(messages, "; ")
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("csv"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})

		// Registration only fails for empty tags or nil funcs.
		_ = validate.RegisterValidation("username", validUsername)
		_ = validate.RegisterValidation("slug", validSlug)
	})
	return validate
}

func validUsername(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return usernamePattern.MatchString(s) && !strings.EqualFold(s, ReservedUsername)
}

func validSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}

// Struct validates s. It returns nil or an *Error describing every failed field.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{fields: []FieldError{{field: "unknown", tag: "unknown", message: err.Error()}}}
	}

	fields := make([]FieldError, len(fieldErrs))
	for i, fe := range fieldErrs {
		fields[i] = FieldError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translate(fe),
		}
	}
	return &Error{fields: fields}
}

var messages = map[string]string{
	"required": "%s is required",
	"email":    "%s must be a valid email address",
	"username": "%s may contain only letters, digits and @.+-_ and must not be \"" + ReservedUsername + "\"",
	"slug":     "%s may contain only letters, digits, hyphens and underscores",
}

var messagesWithParam = map[string]string{
	"oneof": "%s must be one of: %s",
	"gt":    "%s must be greater than %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
}

func translate(fe validator.FieldError) string {
	field := fe.Field()
	if template, ok := messages[fe.Tag()]; ok {
		return fmt.Sprintf(template, field)
	}
	if template, ok := messagesWithParam[fe.Tag()]; ok {
		return fmt.Sprintf(template, field, fe.Param())
	}

	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
