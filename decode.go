// FILE: lixenwraith/ini/decode.go
package ini

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// TagName is the struct tag read by Scan and SetStruct.
const TagName = "ini"

// Scan decodes the document into target, a pointer to a struct or map.
// Sections map to nested structs or maps; values are converted with weak
// typing, so "30s" fills a time.Duration and ["a","b"] fills a []string.
func (d *Document) Scan(target any) error {
	return scanInto(d.Map(), target)
}

// Scan decodes the section's keys into target.
func (s *Section) Scan(target any) error {
	return scanInto(s.Map(), target)
}

// Map returns the document as nested maps of natural Go values.
// See Infer for how each value is typed.
func (d *Document) Map() map[string]any {
	out := make(map[string]any, len(d.entries))
	for name, e := range d.entries {
		if e.IsSection() {
			out[name] = e.section.Map()
			continue
		}
		out[name] = Infer(e.raw)
	}
	return out
}

// Map returns the section keys with natural Go values.
func (s *Section) Map() map[string]any {
	out := make(map[string]any, len(s.keys))
	for name, v := range s.keys {
		out[name] = Infer(v.raw)
	}
	return out
}

// Infer guesses the Go value of raw text: quoted text is a string, a
// bracketed array is a []any, true and false are bools, whole numbers are
// int64 (or uint64 beyond the int64 range), other numbers are float64.
// Anything else, including "", is returned as the raw string.
func Infer(raw string) any {
	switch {
	case raw == "":
		return ""
	case raw[0] == '"':
		return DecodeText(raw)
	case raw[0] == '[' && strings.HasSuffix(raw, "]"):
		parts := SplitArray(raw)
		out := make([]any, 0, len(parts))
		for _, p := range parts {
			out = append(out, Infer(p))
		}
		return out
	case raw == "true":
		return true
	case raw == "false":
		return false
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return u
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	return raw
}

// scanInto is the single decoding path shared by Document.Scan and Section.Scan.
func scanInto(data map[string]any, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("scan target must be non-nil pointer, got %T", target)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          TagName,
		WeaklyTypedInput: true,
		DecodeHook:       decodeHook(),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(data); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}
	return nil
}

// decodeHook returns the composite decode hook for all type conversions
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		// Network types
		mapstructure.StringToIPHookFunc(),
		mapstructure.StringToIPNetHookFunc(),
		stringToURLHookFunc(),

		// Standard hooks
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	)
}

// stringToURLHookFunc handles url.URL conversion
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		isPtr := t.Kind() == reflect.Ptr
		targetType := t
		if isPtr {
			targetType = t.Elem()
		}
		if targetType != reflect.TypeOf(url.URL{}) {
			return data, nil
		}

		u, err := url.Parse(reflect.ValueOf(data).String())
		if err != nil {
			return nil, fmt.Errorf("invalid URL: %w", err)
		}
		if isPtr {
			return u, nil
		}
		return *u, nil
	}
}
