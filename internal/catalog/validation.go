package catalog

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs the struct tags on v and reports the first failure
// with its full field path.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	e := validationErrs[0]
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s: field is required", ErrInvalid, field)
	case "min":
		return fmt.Errorf("%w: %s: must be at least %s", ErrInvalid, field, e.Param())
	default:
		return fmt.Errorf("%w: %s: validation failed (%s)", ErrInvalid, field, e.Tag())
	}
}
