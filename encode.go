// FILE: lixenwraith/ini/encode.go
package ini

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// FromStruct builds a document from a struct. See SetStruct.
func FromStruct(v any) (*Document, error) {
	doc := New()
	if err := doc.SetStruct(v); err != nil {
		return nil, err
	}
	return doc, nil
}

// FromMap builds a document from nested maps. See SetMap.
func FromMap(data map[string]any) (*Document, error) {
	doc := New()
	if err := doc.SetMap(data); err != nil {
		return nil, err
	}
	return doc, nil
}

// SetStruct writes the fields of a struct (or pointer to one) into the
// document, using the "ini" tag for names. Struct and map fields become
// sections; see SetMap for the other rules.
func (d *Document) SetStruct(v any) error {
	data, err := structToMap(v)
	if err != nil {
		return err
	}
	return d.SetMap(data)
}

// SetMap writes data into the document. A nested map or struct becomes a
// section; anything nested deeper is flattened into dotted key names within
// that section. Nil values are skipped. Values that cannot be encoded, and
// kind conflicts with existing entries, are collected and returned together.
func (d *Document) SetMap(data map[string]any) error {
	var errs []error

	for _, name := range slices.Sorted(maps.Keys(data)) {
		value := data[name]
		if value == nil {
			continue
		}

		if nested, isMap := asMap(value); isMap {
			s, err := d.Section(name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for key, leaf := range flattenMap(nested, "") {
				if leaf == nil {
					continue
				}
				raw, err := importValue(leaf)
				if err != nil {
					errs = append(errs, fmt.Errorf("key %s.%s: %w", name, key, err))
					continue
				}
				s.Key(key).raw = raw
			}
			continue
		}

		raw, err := importValue(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("key %s: %w", name, err))
			continue
		}
		if err := d.Get(name).assign(raw); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// importValue encodes a leaf from a struct or a decoded foreign document.
func importValue(v any) (string, error) {
	switch x := v.(type) {
	case time.Time:
		return EncodeText(x.Format(time.RFC3339Nano)), nil
	case time.Duration:
		return EncodeText(x.String()), nil
	case json.Number:
		return encodeAny(normalizeNumber(x))
	case []any:
		elems := make([]any, len(x))
		for i, el := range x {
			elems[i] = normalizeNumber(el)
		}
		v = elems
	case encoding.TextMarshaler:
		text, err := x.MarshalText()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedType, err)
		}
		return EncodeText(string(text)), nil
	}

	raw, err := encodeAny(v)
	if err == nil {
		return raw, nil
	}

	// Last resort for foreign leaf types such as TOML local dates
	s, castErr := cast.ToStringE(v)
	if castErr != nil {
		return "", err
	}
	return EncodeText(s), nil
}

// normalizeNumber turns a json.Number into int64 or float64.
func normalizeNumber(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return Raw(n.String())
}

// asMap reports whether v is a map with string keys or a struct, and
// returns it as a map[string]any. Types that render as text are leaves.
func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	switch v.(type) {
	case encoding.TextMarshaler, fmt.Stringer:
		return nil, false
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		if rv.Type() == reflect.TypeOf(time.Time{}) {
			return nil, false
		}
		out, err := structToMap(rv.Interface())
		if err != nil {
			return nil, false
		}
		return out, true
	}
	return nil, false
}

// structToMap turns a struct into a map keyed by its "ini" tag names.
// Fields tagged "-" and unexported fields are left out. Untagged embedded
// structs contribute their fields to the parent.
func structToMap(v any) (map[string]any, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: expected a struct, got %T", ErrUnsupportedType, v)
	}

	out := make(map[string]any)
	collectFields(rv, out)
	return out, nil
}

func collectFields(rv reflect.Value, out map[string]any) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get(TagName), ",")
		if name == "-" {
			continue
		}

		fv := rv.Field(i)
		if field.Anonymous && name == "" && fv.Kind() == reflect.Struct {
			collectFields(fv, out)
			continue
		}
		if name == "" {
			name = field.Name
		}
		if fv.Kind() == reflect.Pointer && fv.IsNil() {
			out[name] = nil
			continue
		}
		out[name] = fv.Interface()
	}
}
