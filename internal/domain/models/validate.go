package models

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func documentValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("imageref", validateImageRef)
	})

	return validate
}

// Stored images are empty, an upload path or an absolute URL. Inline data only
// lives in the editor and never reaches the store.
func validateImageRef(fl validator.FieldLevel) bool {
	switch ClassifyImageRef(fl.Field().String()) {
	case ImageRefEmpty, ImageRefUpload, ImageRefAbsolute:
		return true
	}

	return false
}

// Validate проверяет документ по правилам его типа страницы
func (d PageDocument) Validate() error {
	if d.Content == nil {
		return &ValidationError{Errors: []string{"document has no content"}}
	}

	if d.Kind != d.Content.Kind() {
		return &ValidationError{Errors: []string{
			fmt.Sprintf("content of kind %q stored under kind %q", d.Content.Kind(), d.Kind),
		}}
	}

	err := documentValidator().Struct(d.Content)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Errors: []string{err.Error()}}
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describeFieldError(fe))
	}

	return &ValidationError{Errors: msgs}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "imageref":
		return fmt.Sprintf("%s: %q is not an upload path or absolute url", fe.Namespace(), fe.Value())
	case "email":
		return fmt.Sprintf("%s: %q is not a valid email", fe.Namespace(), fe.Value())
	case "max":
		return fmt.Sprintf("%s: longer than %s characters", fe.Namespace(), fe.Param())
	}

	return fmt.Sprintf("%s: failed on %q", fe.Namespace(), fe.Tag())
}
