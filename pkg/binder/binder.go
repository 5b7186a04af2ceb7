// Package binder decodes HTTP request data into tagged structs.
//
//	type createTopicRequest struct {
//		Title string `form:"title"`
//	}
//
//	var req createTopicRequest
//	if err := binder.Form()(r, &req); err != nil { ... }
//
// Form and Query read `form` and `query` tags respectively. Fields without
// a tag are skipped; "-" skips explicitly.
package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Binding errors.
var (
	ErrUnsupportedMediaType = errors.New("binder: unsupported media type")
	ErrInvalidTarget        = errors.New("binder: target must be a non-nil pointer to struct")
	ErrInvalidValue         = errors.New("binder: invalid value")
)

// Func binds request data into v.
type Func func(r *http.Request, v any) error

const (
	maxMemory   = 10 << 20
	maxJSONBody = 1 << 20
)

// Form binds url-encoded or multipart form bodies using `form` tags.
func Form() Func {
	return func(r *http.Request, v any) error {
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch ct {
		case "multipart/form-data":
			if err := r.ParseMultipartForm(maxMemory); err != nil {
				return fmt.Errorf("binder: parse multipart form: %w", err)
			}
		case "application/x-www-form-urlencoded", "":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("binder: parse form: %w", err)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
		}
		return bindValues(r.PostForm, v, "form")
	}
}

// Query binds URL query parameters using `query` tags.
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindValues(r.URL.Query(), v, "query")
	}
}

// JSON decodes a JSON body, rejecting unknown fields.
func JSON() Func {
	return func(r *http.Request, v any) error {
		ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if ct != "application/json" {
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, ct)
		}
		dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("binder: decode json: %w", err)
		}
		return nil
	}
}

func bindValues(values url.Values, v any, tag string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	return bindStruct(values, rv.Elem(), tag)
}

func bindStruct(values url.Values, rv reflect.Value, tag string) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		fv := rv.Field(i)

		if field.Anonymous && fv.Kind() == reflect.Struct {
			if err := bindStruct(values, fv, tag); err != nil {
				return err
			}
			continue
		}

		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "" || name == "-" {
			continue
		}
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if err := setField(fv, raw); err != nil {
			return fmt.Errorf("%w: field %q: %w", ErrInvalidValue, name, err)
		}
	}
	return nil
}

func setField(fv reflect.Value, raw []string) error {
	switch fv.Kind() {
	case reflect.Slice:
		slice := reflect.MakeSlice(fv.Type(), len(raw), len(raw))
		for i, s := range raw {
			if err := setScalar(slice.Index(i), s); err != nil {
				return err
			}
		}
		fv.Set(slice)
		return nil
	case reflect.Pointer:
		ptr := reflect.New(fv.Type().Elem())
		if err := setScalar(ptr.Elem(), raw[0]); err != nil {
			return err
		}
		fv.Set(ptr)
		return nil
	default:
		return setScalar(fv, raw[0])
	}
}

func setScalar(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		if s == "on" {
			fv.SetBool(true)
			return nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}
