// FILE: lixenwraith/ini/value.go
package ini

import (
	"fmt"
	"iter"
	"reflect"
	"strings"
)

// Cell is a single textual slot that typed values are written to and read from.
// Both *Value and *Entry are cells.
type Cell interface {
	// Raw returns the stored text; "" means unset.
	Raw() string
	// Empty reports whether the cell holds no value.
	Empty() bool
	assign(raw string) error
}

// Value holds the raw text of one key.
// The zero Value is empty and ready to use.
type Value struct {
	raw string
}

// Raw returns the stored text exactly as it appears in the file.
func (v *Value) Raw() string {
	return v.raw
}

// Set encodes x and stores it. Scalars, slices and arrays of scalars,
// []any holding scalars, and Raw are accepted.
func (v *Value) Set(x any) error {
	raw, err := encodeAny(x)
	if err != nil {
		return err
	}
	v.raw = raw
	return nil
}

// Clear resets the value to unset.
func (v *Value) Clear() {
	v.raw = ""
}

// Empty reports whether no text is stored.
// An encoded empty string ("") is not empty.
func (v *Value) Empty() bool {
	return v.raw == ""
}

func (v *Value) assign(raw string) error {
	v.raw = raw
	return nil
}

// Bool returns the stored boolean, or def when the value is empty.
func (v *Value) Bool(def bool) bool { return Get(v, def) }

// Int returns the stored integer, or def when the value is empty.
func (v *Value) Int(def int) int { return Get(v, def) }

// Int64 returns the stored integer, or def when the value is empty.
func (v *Value) Int64(def int64) int64 { return Get(v, def) }

// Uint64 returns the stored unsigned integer, or def when the value is empty.
func (v *Value) Uint64(def uint64) uint64 { return Get(v, def) }

// Float64 returns the stored float, or def when the value is empty.
func (v *Value) Float64(def float64) float64 { return Get(v, def) }

// Text returns the stored string, or def when the value is empty.
func (v *Value) Text(def string) string { return Get(v, def) }

// Strings returns the stored array decoded as text elements.
func (v *Value) Strings() []string { return GetArray[string](v) }

// Get decodes the cell as T, returning def when the cell is empty.
func Get[T Scalar](c Cell, def T) T {
	raw := c.Raw()
	if raw == "" {
		return def
	}
	return Decode[T](raw)
}

// GetArray decodes the cell as an array of T.
func GetArray[T Scalar](c Cell) []T {
	return DecodeArray[T](c.Raw())
}

// Put encodes x into the cell.
func Put[T Scalar](c Cell, x T) error {
	return c.assign(Encode(x))
}

// PutArray encodes values into the cell as an array.
func PutArray[T Scalar](c Cell, values []T) error {
	return c.assign(EncodeArray(values))
}

// PutSeq encodes a sequence into the cell as an array.
func PutSeq[T Scalar](c Cell, seq iter.Seq[T]) error {
	return c.assign(EncodeSeq(seq))
}

// encodeAny is the dynamic counterpart of Encode and EncodeArray, used where
// the static type is unknown (Set, struct and map import).
func encodeAny(x any) (string, error) {
	if x == nil {
		return "", fmt.Errorf("%w: nil", ErrUnsupportedType)
	}
	rv := reflect.ValueOf(x)
	if s, ok := encodeScalar(rv); ok {
		return s, nil
	}

	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "", fmt.Errorf("%w: nil %T", ErrUnsupportedType, x)
		}
		return encodeAny(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		var b strings.Builder
		b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			el := rv.Index(i)
			for el.Kind() == reflect.Interface || el.Kind() == reflect.Pointer {
				if el.IsNil() {
					return "", fmt.Errorf("%w: nil element %d in %T", ErrUnsupportedType, i, x)
				}
				el = el.Elem()
			}
			s, ok := encodeScalar(el)
			if !ok {
				return "", fmt.Errorf("%w: element %d of %T has type %s", ErrUnsupportedType, i, x, el.Type())
			}
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s)
		}
		b.WriteByte(']')
		return b.String(), nil
	}

	return "", fmt.Errorf("%w: %T", ErrUnsupportedType, x)
}
