package build

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrInvalidBuild wraps struct validation failures of a resolved build.
var ErrInvalidBuild = errors.New("invalid build")

// Validate checks every selected part against its field constraints. It does
// not check compatibility or completeness.
func (b *Build) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil build", ErrInvalidBuild)
	}
	err := validate.Struct(b)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	e := validationErrs[0]
	return fmt.Errorf("%w: %s: failed %q", ErrInvalidBuild, e.Namespace(), e.Tag())
}
