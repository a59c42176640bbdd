package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator validates request structs via their `validate` tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	return &Validator{v: v}
}

// Validate checks obj against its tags and returns a single
// human-readable error for the first failing field.
func (va *Validator) Validate(obj interface{}) error {
	err := va.v.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	ok := false
	if verrs, ok = err.(validator.ValidationErrors); !ok || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", field)
	case "email":
		return fmt.Errorf("%s must be a valid email", field)
	case "uuid":
		return fmt.Errorf("%s must be a valid UUID", field)
	case "gt":
		return fmt.Errorf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Errorf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Errorf("%s must not exceed %s", field, fe.Param())
	default:
		return fmt.Errorf("%s is invalid", field)
	}
}

// Var validates a single value against the given rules.
func (va *Validator) Var(value interface{}, rules string) error {
	return va.v.Var(value, rules)
}
