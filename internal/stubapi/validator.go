package stubapi

import "github.com/go-playground/validator/v10"

type structValidator struct {
	v *validator.Validate
}

func newValidator() *structValidator {
	return &structValidator{v: validator.New()}
}

func (sv *structValidator) Validate(i any) error {
	return sv.v.Struct(i)
}
