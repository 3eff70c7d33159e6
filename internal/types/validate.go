//nolint:revive // types is a standard Go package name pattern
package types

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateExperience checks gathered experience data before it enters a
// session: non-negative years, a named field, and 1-5 self-assessment marks.
func ValidateExperience(exp Experience) error {
	if err := validate.Struct(exp); err != nil {
		var errs validator.ValidationErrors
		if ok := errors.As(err, &errs); ok && len(errs) > 0 {
			first := errs[0]
			return fmt.Errorf("invalid experience data: field %q fails %q", first.Field(), first.Tag())
		}
		return fmt.Errorf("invalid experience data: %w", err)
	}
	return nil
}
