package handler

import (
	"github.com/localtalent/console/internal/pkg/validate"
)

// Validator plugs the shared form validator into echo's c.Validate.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(i any) error {
	return validate.Struct(i)
}
