package internal

import (
	"encoding/json"
	"strconv"
)

// ExtractorSource reads one candidate value from a request. An empty value
// counts as a miss.
type ExtractorSource = func(Context) (string, bool)

// Extractor reads a value from the first source that has one, e.g. a
// request id from X-Request-ID, then X-Correlation-ID.
type Extractor struct {
	sources []ExtractorSource
}

func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract returns the first non-empty value.
func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(c); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// present turns a plain string getter into a source.
func present(get func(Context) string) ExtractorSource {
	return func(c Context) (string, bool) {
		v := get(c)
		return v, v != ""
	}
}

func FromHeader(name string) ExtractorSource {
	return present(func(c Context) string { return c.Header(name) })
}

func FromQuery(name string) ExtractorSource {
	return present(func(c Context) string { return c.Query(name) })
}

func FromParam(name string) ExtractorSource {
	return present(func(c Context) string { return c.Param(name) })
}

func FromForm(name string) ExtractorSource {
	return present(func(c Context) string { return c.Form(name) })
}

// FromCookie reads an unsigned cookie.
func FromCookie(name string) ExtractorSource {
	return present(func(c Context) string {
		v, _ := c.Cookie(name)
		return v
	})
}

// FromSession reads a session value stored as a JSON string or integer.
// The signed-in user id is read with FromSession("user").
func FromSession(key string) ExtractorSource {
	return present(func(c Context) string {
		sess, err := c.Session()
		if err != nil {
			return ""
		}
		raw, ok := sess.GetValue(key)
		if !ok {
			return ""
		}
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
		var n int64
		if json.Unmarshal(raw, &n) == nil {
			return strconv.FormatInt(n, 10)
		}
		return ""
	})
}
