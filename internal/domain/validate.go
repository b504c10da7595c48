package domain

import (
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func taskValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks a normalized task against its field constraints
func Validate(t Task) error {
	err := taskValidator().Struct(t)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	verr := &ValidationError{TaskID: t.ID}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, FieldError{
			Field: fe.Namespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return verr
}
