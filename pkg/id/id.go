package id

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalid is returned when a value cannot be converted into an ID.
var ErrInvalid = errors.New("id: invalid identifier")

// ID is an int64 database identifier tagged with the kind of entity it refers to.
// ID[User] and ID[Topic] are distinct types: passing one where the other is
// expected is a compile error.
//
// The zero value means "no identifier". Stores never hand out zero IDs.
type ID[T any] int64

// New wraps a raw int64 as an ID of kind T.
func New[T any](v int64) ID[T] {
	return ID[T](v)
}

// Parse parses a base-10 identifier, e.g. from a URL parameter.
// Returns ErrInvalid for malformed or non-positive input.
func Parse[T any](s string) (ID[T], error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return ID[T](v), nil
}

// Int64 returns the raw identifier.
func (i ID[T]) Int64() int64 {
	return int64(i)
}

// IsZero reports whether the identifier is unset.
func (i ID[T]) IsZero() bool {
	return i == 0
}

func (i ID[T]) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Value implements driver.Valuer.
func (i ID[T]) Value() (driver.Value, error) {
	return int64(i), nil
}

// Scan implements sql.Scanner.
func (i *ID[T]) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*i = ID[T](v)
	case int32:
		*i = ID[T](v)
	case int:
		*i = ID[T](v)
	case []byte:
		return i.scanString(string(v))
	case string:
		return i.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalid, src)
	}
	return nil
}

func (i *ID[T]) scanString(s string) error {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	*i = ID[T](v)
	return nil
}
