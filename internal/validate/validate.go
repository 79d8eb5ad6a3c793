// Package validate checks submitted forms against the constraints declared in
// their struct tags.
//
// A form is a struct whose fields carry a `form` tag (the submitted field
// name), an optional `label` tag (the name used in messages) and a `validate`
// tag understood by go-playground/validator. Every field is checked; the
// result maps each failing field name to the message for its first violated
// constraint.
package validate

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

// Errors maps a form field name to a human readable message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return strings.Join(parts, "; ")
}

// Normalizer is implemented by forms that clean up submitted values (trim
// whitespace, fold case) before they are checked.
type Normalizer interface {
	Normalize()
}

type Validator struct {
	validate *validator.Validate
	decoder  *schema.Decoder
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(formName)
	v.RegisterValidation("maxbytes", maxBytes)

	d := schema.NewDecoder()
	d.SetAliasTag("form")
	d.IgnoreUnknownKeys(true)

	return &Validator{validate: v, decoder: d}
}

// Bind decodes src into form, normalizes it and checks it. A constraint
// failure is returned as Errors; any other error means src could not be
// decoded.
func (v *Validator) Bind(form any, src url.Values) error {
	if err := v.decoder.Decode(form, src); err != nil {
		return fmt.Errorf("decode form: %w", err)
	}
	return v.Struct(form)
}

func (v *Validator) Struct(form any) error {
	if n, ok := form.(Normalizer); ok {
		n.Normalize()
	}

	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate: %w", err)
	}

	t := reflect.Indirect(reflect.ValueOf(form)).Type()
	errs := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = message(t, fe)
	}

	return errs
}

func message(t reflect.Type, fe validator.FieldError) string {
	label := labelOf(t, fe.StructField(), fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", label, fe.Param())
	case "email":
		return "Please enter a valid email"
	case "eqfield":
		return fmt.Sprintf("%s does not match %s", label, labelOf(t, fe.Param(), fe.Param()))
	default:
		return label + " is invalid"
	}
}

// maxBytes bounds the encoded length of a string, unlike max which counts
// runes. bcrypt rejects passwords longer than 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

func labelOf(t reflect.Type, structField, fallback string) string {
	if f, ok := t.FieldByName(structField); ok {
		if l := f.Tag.Get("label"); l != "" {
			return l
		}
	}
	return fallback
}

func formName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
