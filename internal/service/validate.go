package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/Clark-Hu/movie-reviews/internal/errs"
)

// Validator checks struct input and reports failures as errs.EINVALID.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a validator that names fields by their JSON tag and
// understands the notblank rule.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{validate: v}
}

// Validate returns nil or an *errs.Error listing the offending fields.
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return errs.Errorf(errs.EINVALID, "%s", formatValidationError(err))
	}
	return nil
}

func formatValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid input."
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		switch fe.Tag() {
		case "required", "notblank":
			parts = append(parts, field+" is required")
		case "gte", "lte":
			parts = append(parts, field+" must be between 1 and 5")
		default:
			parts = append(parts, field+" failed on "+fe.Tag())
		}
	}
	return strings.Join(parts, "; ") + "."
}
