package validator

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// WithMessage returns a copy of r that reports msg instead of the default message.
func (r Rule) WithMessage(msg string) Rule {
	r.Error.Message = msg
	return r
}

// Apply evaluates every rule and returns all failures as ValidationErrors,
// or nil when every rule passes.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func newRule(check func() bool, field, key, msg string, values map[string]any) Rule {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return Rule{
		Check: check,
		Error: ValidationError{
			Field:             field,
			Message:           msg,
			TranslationKey:    key,
			TranslationValues: values,
		},
	}
}

// RequiredString fails on an empty or whitespace-only string.
func RequiredString(field, value string) Rule {
	return newRule(func() bool { return strings.TrimSpace(value) != "" },
		field, "validation.required", "field is required", nil)
}

// MinLenString fails when value has fewer than minLen characters.
func MinLenString(field, value string, minLen int) Rule {
	return newRule(func() bool { return utf8.RuneCountInString(value) >= minLen },
		field, "validation.min_length",
		fmt.Sprintf("must be at least %d characters long", minLen),
		map[string]any{"min": minLen})
}

// MaxLenString fails when value has more than maxLen characters.
func MaxLenString(field, value string, maxLen int) Rule {
	return newRule(func() bool { return utf8.RuneCountInString(value) <= maxLen },
		field, "validation.max_length",
		fmt.Sprintf("must not exceed %d characters", maxLen),
		map[string]any{"max": maxLen})
}

// LenString fails unless value has exactly length characters.
func LenString(field, value string, length int) Rule {
	return newRule(func() bool { return utf8.RuneCountInString(value) == length },
		field, "validation.exact_length",
		fmt.Sprintf("must be exactly %d characters long", length),
		map[string]any{"length": length})
}

// LenBetweenString fails unless minLen <= len(value) <= maxLen, counted in characters.
func LenBetweenString(field, value string, minLen, maxLen int) Rule {
	return newRule(func() bool {
		n := utf8.RuneCountInString(value)
		return n >= minLen && n <= maxLen
	}, field, "validation.length_between",
		fmt.Sprintf("must be between %d and %d characters long", minLen, maxLen),
		map[string]any{"min": minLen, "max": maxLen})
}

// CharsetString fails when any rune of value is rejected by allowed.
// Allowed sets compose with AnyOf.
func CharsetString(field, value string, allowed func(rune) bool) Rule {
	return newRule(func() bool {
		for _, r := range value {
			if !allowed(r) {
				return false
			}
		}
		return true
	}, field, "validation.charset", "contains characters that are not allowed", nil)
}

// AnyOf accepts a rune if any of the predicates accepts it.
func AnyOf(preds ...func(rune) bool) func(rune) bool {
	return func(r rune) bool {
		for _, p := range preds {
			if p(r) {
				return true
			}
		}
		return false
	}
}

// IsSpace accepts the ASCII space only.
func IsSpace(r rune) bool { return r == ' ' }

// IsASCIIPunct accepts ASCII punctuation and symbol characters.
func IsASCIIPunct(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}

// EqualString fails unless value equals other.
func EqualString(field, value, other string) Rule {
	return newRule(func() bool { return value == other },
		field, "validation.equal", "values do not match", nil)
}
