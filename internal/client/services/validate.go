// Package services contains the console's application services. They
// validate operator input the way the dashboard forms did, call the relay
// through client.Client and keep the session in step.
package services

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation matches every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError maps form fields to operator-facing messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

const (
	msgPasswordMismatch = "As senhas não correspondem"
	msgInvalidEmail     = "Email inválido"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	v.RegisterStructValidation(optionalPasswordPair, editUserForm{}, profileForm{})
	return v
}

// optionalPasswordPair accepts an empty password; a non-empty one must match
// its confirmation.
func optionalPasswordPair(sl validator.StructLevel) {
	var pw, confirm string
	switch f := sl.Current().Interface().(type) {
	case editUserForm:
		pw, confirm = f.Password, f.ConfirmPassword
	case profileForm:
		pw, confirm = f.Password, f.ConfirmPassword
	default:
		return
	}
	if pw != "" && pw != confirm {
		sl.ReportError(confirm, "confirmPassword", "ConfirmPassword", "passwordmatch", "")
	}
}

func check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "email":
		return msgInvalidEmail
	case "eqfield", "passwordmatch":
		return msgPasswordMismatch
	case "min":
		if strings.Contains(strings.ToLower(fe.Field()), "password") {
			return "A senha deve conter no mínimo 6 caracteres"
		}
		return fmt.Sprintf("Deve conter no mínimo %s caracteres", fe.Param())
	case "required":
		return "Campo obrigatório"
	default:
		return fmt.Sprintf("Valor inválido (%s)", fe.Tag())
	}
}
