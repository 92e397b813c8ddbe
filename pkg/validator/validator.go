package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/medboard/hospital-api/pkg/errors"
)

// Validator validates request payloads using `validate` struct tags.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate checks obj against its struct tags and returns an InvalidInput
// error naming the first offending field.
func (val *Validator) Validate(obj interface{}) error {
	err := val.v.Struct(obj)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.InvalidInput("invalid payload", err)
	}

	fe := verrs[0]
	msg := fmt.Sprintf("field %s failed %s validation", strings.ToLower(fe.Field()), fe.Tag())
	return errors.InvalidInput(msg, err)
}

// Var validates a single value against a rule string, e.g. "min=5,max=15".
func (val *Validator) Var(field string, value interface{}, rule string) error {
	if err := val.v.Var(value, rule); err != nil {
		return errors.InvalidInput(fmt.Sprintf("field %s failed %s validation", field, rule), err)
	}
	return nil
}
