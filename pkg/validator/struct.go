package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
)

// Validatable is implemented by structs with rules that tags cannot express.
// Validate runs after tag validation; returned ValidationErrors are merged
// with tag failures, any other error aborts validation.
type Validatable interface {
	Validate() error
}

var (
	structValidator *playground.Validate
	structOnce      sync.Once
)

func engine() *playground.Validate {
	structOnce.Do(func() {
		structValidator = playground.New(playground.WithRequiredStructEnabled())
		structValidator.RegisterTagNameFunc(fieldName)
	})
	return structValidator
}

// fieldName reports the form name of a field so errors line up with inputs.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json", "query"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ValidateStruct validates v against its `validate` struct tags and, if v
// implements Validatable, its own Validate method.
// Rule failures are returned as ValidationErrors.
func ValidateStruct(v any) error {
	var errs ValidationErrors

	if err := engine().Struct(v); err != nil {
		var fieldErrs playground.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validator: %w", err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, convert(fe))
		}
	}

	if hook, ok := v.(Validatable); ok {
		if err := hook.Validate(); err != nil {
			ve := ExtractValidationErrors(err)
			if ve == nil {
				return err
			}
			errs = append(errs, ve...)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func convert(fe playground.FieldError) ValidationError {
	field := fe.Field()
	values := map[string]any{"field": field}

	var key, msg string
	switch fe.Tag() {
	case "required":
		key, msg = "validation.required", "field is required"
	case "min":
		key, msg = "validation.min_length", fmt.Sprintf("must be at least %s characters long", fe.Param())
		values["min"] = fe.Param()
	case "max":
		key, msg = "validation.max_length", fmt.Sprintf("must not exceed %s characters", fe.Param())
		values["max"] = fe.Param()
	case "len":
		key, msg = "validation.exact_length", fmt.Sprintf("must be exactly %s characters long", fe.Param())
		values["length"] = fe.Param()
	case "gte":
		key, msg = "validation.min", "must be at least "+fe.Param()
		values["min"] = fe.Param()
	case "lte":
		key, msg = "validation.max", "must not exceed "+fe.Param()
		values["max"] = fe.Param()
	case "eqfield":
		key, msg = "validation.equal", "values do not match"
	default:
		key, msg = "validation."+fe.Tag(), "is invalid"
	}

	return ValidationError{
		Field:             field,
		Message:           msg,
		TranslationKey:    key,
		TranslationValues: values,
	}
}
