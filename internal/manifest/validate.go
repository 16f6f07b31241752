package manifest

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var storeIDPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("storeid", func(fl validator.FieldLevel) bool {
		return storeIDPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		v, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && v.Valid()
	})
}

// ValidID reports whether id only contains lowercase alphanumeric
// characters, dashes and underscores.
func ValidID(id string) bool {
	return storeIDPattern.MatchString(id)
}

// Validate checks m against the manifest rules.
func Validate(m *Manifest) error {
	if m == nil {
		return fmt.Errorf("%w: nil manifest", ErrInvalid)
	}
	if err := validate.Struct(m); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]
		switch e.Tag() {
		case "storeid":
			return fmt.Errorf("%w: %s: the store id must contain only lowercase alphanumeric characters, dashes and underscores (value: %q)",
				ErrInvalid, e.Namespace(), e.Value())
		case "enum":
			return fmt.Errorf("%w: %s: unknown value %v", ErrInvalid, e.Namespace(), e.Value())
		}
		return fmt.Errorf("%w: %s: validation failed on '%s' tag (value: %v)",
			ErrInvalid, e.Namespace(), e.Tag(), e.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalid, err)
}
