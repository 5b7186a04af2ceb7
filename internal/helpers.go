package internal

import (
	"reflect"
	"strconv"

	"github.com/dmitrymomot/ryob/pkg/id"
)

// Scalar is the set of types the typed parameter helpers can parse into.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the value stored with Set under key, or the zero T
// when it is missing or of another type.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// Param parses a path parameter into T. Unparseable input yields the zero T.
func Param[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Param(name))
	return v
}

// Query parses a query parameter into T. Unparseable input yields the zero T.
func Query[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Query(name))
	return v
}

// QueryDefault is Query with a fallback for missing or unparseable input.
//
//	page := ryob.QueryDefault(c, "page", 1)
func QueryDefault[T Scalar](c Context, name string, fallback T) T {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	if v, ok := parseScalar[T](raw); ok {
		return v
	}
	return fallback
}

// ParamID parses a path parameter as a positive id. Anything else returns
// an error wrapping id.ErrInvalid.
func ParamID[T any](c Context, name string) (id.ID[T], error) {
	return id.Parse[T](c.Param(name))
}

// parseScalar dispatches on the underlying kind, so named types such as
// `type Page int` parse like their base type.
func parseScalar[T Scalar](raw string) (T, bool) {
	var out T
	v := reflect.ValueOf(&out).Elem()

	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, v.Type().Bits())
		if err != nil {
			return out, false
		}
		v.SetInt(n)
	case reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return out, false
		}
		v.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return out, false
		}
		v.SetBool(b)
	default:
		return out, false
	}
	return out, true
}
