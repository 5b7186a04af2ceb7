package validator

import (
	"errors"
	"strings"
)

// ErrValidation is the sentinel matched by errors.Is for every ValidationErrors value.
var ErrValidation = errors.New("validation failed")

// ValidationError describes one failed rule on one field.
// TranslationKey and TranslationValues allow the message to be re-rendered
// by a translator; Message is the ready-to-display default.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is an ordered list of rule failures.
type ValidationErrors []ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Is makes errors.Is(err, ErrValidation) true for any ValidationErrors.
func (es ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// IsEmpty reports whether there are no errors.
func (es ValidationErrors) IsEmpty() bool {
	return len(es) == 0
}

// Has reports whether field has at least one error.
func (es ValidationErrors) Has(field string) bool {
	for _, e := range es {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for field, in order.
func (es ValidationErrors) Get(field string) []string {
	var msgs []string
	for _, e := range es {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// GetErrors returns the errors recorded for field, in order.
func (es ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, e := range es {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns every message in order.
func (es ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Message)
	}
	return msgs
}

// Translate rewrites Message in place using fn for every error that carries
// a TranslationKey. A nil fn is a no-op.
func (es ValidationErrors) Translate(fn func(key string, values map[string]any) string) {
	if fn == nil {
		return
	}
	for i := range es {
		if es[i].TranslationKey == "" {
			continue
		}
		es[i].Message = fn(es[i].TranslationKey, es[i].TranslationValues)
	}
}

// IsValidationError reports whether err carries validation failures.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the validation failures wrapped in err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
