package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotStructPointer is returned by SanitizeStruct for anything but a
// non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("sanitizer: expected non-nil pointer to struct")

var transforms = map[string]func(string) string{
	"trim":     Trim,
	"collapse": CollapseSpace,
	"lower":    Lower,
	"control":  StripControl,
	"newlines": NormalizeNewlines,
	"html":     SanitizeHTML,
	"strip":    StripHTML,
}

// SanitizeStruct applies the transforms named in `sanitize` tags to string
// fields, in tag order. Nested structs and pointers to structs are walked.
//
//	type Form struct {
//		Name string `sanitize:"trim,collapse"`
//		Body string `sanitize:"newlines,trim"`
//	}
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	return sanitizeValue(rv.Elem())
}

func sanitizeValue(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)

		switch {
		case fv.Kind() == reflect.Struct:
			if err := sanitizeValue(fv); err != nil {
				return err
			}
			continue
		case fv.Kind() == reflect.Pointer && !fv.IsNil() && fv.Elem().Kind() == reflect.Struct:
			if err := sanitizeValue(fv.Elem()); err != nil {
				return err
			}
			continue
		}

		tag := field.Tag.Get("sanitize")
		if tag == "" || tag == "-" || fv.Kind() != reflect.String {
			continue
		}

		s := fv.String()
		for name := range strings.SplitSeq(tag, ",") {
			fn, ok := transforms[strings.TrimSpace(name)]
			if !ok {
				return fmt.Errorf("sanitizer: unknown transform %q on field %s", name, field.Name)
			}
			s = fn(s)
		}
		fv.SetString(s)
	}
	return nil
}
