// Package validation wraps go-playground/validator with domain-aware
// rules and error conversion.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/linknest/linknest-server/internal/errors"
	"github.com/linknest/linknest-server/internal/util"
)

// Validator validates request structs and reports failures as
// field-keyed domain validation errors.
type Validator struct {
	v *validator.Validate
}

// New builds a Validator with the domain rules registered.
func New() *Validator {
	v := validator.New()

	// Report fields by their JSON name so error details line up
	// with what the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// tagslug: the value must normalize to a non-empty slug. Catches
	// tag names made entirely of emoji or punctuation, which would
	// otherwise collapse to "".
	if err := v.RegisterValidation("tagslug", func(fl validator.FieldLevel) bool {
		return util.NormalizeTagSlug(fl.Field().String()) != ""
	}); err != nil {
		panic(fmt.Sprintf("validation: registering tagslug rule: %v", err))
	}

	return &Validator{v: v}
}

// Validate checks s against its struct tags. On failure it returns a
// domain validation error carrying a message per offending field.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = messageFor(fe)
	}
	return domainerrors.ValidationWithDetails("validation failed", details)
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "tagslug":
		return "must contain at least one letter or digit"
	default:
		return "is invalid"
	}
}
