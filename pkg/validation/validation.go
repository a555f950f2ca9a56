// Package validation runs struct-tag rules over request payloads and reports the
// outcome as a Result, independent of persistence and transport.
//
// Rules come from `validate` tags; the message reported for a failing field comes
// from its `msg` tag, falling back to a generic description of the rule.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"cryptnote-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of validating one payload.
type Result struct {
	Errors []apperror.FieldError
}

// OK reports whether the payload passed every rule.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a passing result and an apperror validation error otherwise.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	return apperror.Validation(r.Errors)
}

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return instance
}

// Validate checks v, which must be a struct or a pointer to one.
func Validate(v any) Result {
	err := get().Struct(v)
	if err == nil {
		return Result{}
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: []apperror.FieldError{{Field: "", Msg: err.Error()}}}
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	res := Result{Errors: make([]apperror.FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, apperror.FieldError{
			Field: fe.Field(),
			Msg:   message(t, fe),
			Value: safeValue(fe),
		})
	}
	return res
}

func message(t reflect.Type, fe validator.FieldError) string {
	if f, ok := t.FieldByName(fe.StructField()); ok {
		if msg := f.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// safeValue echoes the rejected value back unless the field looks like a secret.
func safeValue(fe validator.FieldError) any {
	if strings.Contains(strings.ToLower(fe.Field()), "password") {
		return nil
	}
	return fe.Value()
}
