// FILE: lixenwraith/ini/codec.go
package ini

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Raw is text stored verbatim, bypassing every encoding rule.
// Assigning a Raw writes it into a cell as-is; reading a Raw returns the
// cell's stored text unchanged.
type Raw string

// Signed is the set of signed integer types, encoded through int64.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types, encoded through uint64.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float is the set of floating point types.
type Float interface {
	~float32 | ~float64
}

// Scalar is every type with a single-value textual encoding.
type Scalar interface {
	~bool | Signed | Unsigned | Float | ~string
}

// Category identifies which encoding rule applies to a type.
type Category int

const (
	CategoryInvalid Category = iota
	CategoryRaw
	CategoryBool
	CategorySigned
	CategoryUnsigned
	CategoryFloat
	CategoryText
)

var rawType = reflect.TypeOf(Raw(""))

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRaw:
		return "raw"
	case CategoryBool:
		return "bool"
	case CategorySigned:
		return "signed"
	case CategoryUnsigned:
		return "unsigned"
	case CategoryFloat:
		return "float"
	case CategoryText:
		return "text"
	default:
		return "invalid"
	}
}

// CategoryOf maps a type to its encoding category.
// Types without a scalar encoding map to CategoryInvalid.
func CategoryOf(t reflect.Type) Category {
	if t == nil {
		return CategoryInvalid
	}
	if t == rawType {
		return CategoryRaw
	}
	switch t.Kind() {
	case reflect.Bool:
		return CategoryBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return CategorySigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return CategoryUnsigned
	case reflect.Float32, reflect.Float64:
		return CategoryFloat
	case reflect.String:
		return CategoryText
	default:
		return CategoryInvalid
	}
}

// Encode converts a scalar to its canonical textual form.
func Encode[T Scalar](v T) string {
	s, _ := encodeScalar(reflect.ValueOf(v))
	return s
}

// Decode converts raw text back to a scalar.
// Decoding never fails: malformed input yields the zero value, and for
// booleans anything other than "true" yields false.
func Decode[T Scalar](raw string) T {
	var v T
	decodeScalar(reflect.ValueOf(&v).Elem(), raw)
	return v
}

// encodeScalar encodes rv according to its category.
// The second result is false when rv has no scalar encoding.
func encodeScalar(rv reflect.Value) (string, bool) {
	if !rv.IsValid() {
		return "", false
	}
	switch CategoryOf(rv.Type()) {
	case CategoryRaw:
		return rv.String(), true
	case CategoryBool:
		return strconv.FormatBool(rv.Bool()), true
	case CategorySigned:
		return strconv.FormatInt(rv.Int(), 10), true
	case CategoryUnsigned:
		return strconv.FormatUint(rv.Uint(), 10), true
	case CategoryFloat:
		return formatFloat(rv.Float(), rv.Type().Bits()), true
	case CategoryText:
		return EncodeText(rv.String()), true
	default:
		return "", false
	}
}

// decodeScalar stores the decoded form of raw into the settable rv.
// Integers are parsed into the widened 64-bit type and narrowed by truncation.
func decodeScalar(rv reflect.Value, raw string) bool {
	switch CategoryOf(rv.Type()) {
	case CategoryRaw:
		rv.SetString(raw)
	case CategoryBool:
		rv.SetBool(raw == "true")
	case CategorySigned:
		rv.SetInt(parseSigned(raw))
	case CategoryUnsigned:
		rv.SetUint(parseUnsigned(raw))
	case CategoryFloat:
		rv.SetFloat(parseFloat(raw, rv.Type().Bits()))
	case CategoryText:
		rv.SetString(DecodeText(raw))
	default:
		return false
	}
	return true
}

// formatFloat writes f with the maximum round-trip digit count for its width.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	digits := 17
	if bits == 32 {
		digits = 9
	}
	return strconv.FormatFloat(f, 'g', digits, bits)
}

const numberSpace = " \t\n\r\v\f"

// leadingInteger returns the optionally signed decimal prefix of s,
// after skipping leading whitespace. It returns "" when s has no digits there.
func leadingInteger(s string) string {
	s = strings.TrimLeft(s, numberSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == start {
		return ""
	}
	return s[:end]
}

// leadingFloat returns the decimal floating point prefix of s.
func leadingFloat(s string) string {
	s = strings.TrimLeft(s, numberSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	mantissa := 0
	for end < len(s) && isDigit(s[end]) {
		end++
		mantissa++
	}
	if end < len(s) && s[end] == '.' {
		end++
		for end < len(s) && isDigit(s[end]) {
			end++
			mantissa++
		}
	}
	if mantissa == 0 {
		return ""
	}
	// Exponent only counts when at least one digit follows it
	if end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		exp := end + 1
		if exp < len(s) && (s[exp] == '+' || s[exp] == '-') {
			exp++
		}
		digits := exp
		for exp < len(s) && isDigit(s[exp]) {
			exp++
		}
		if exp > digits {
			end = exp
		}
	}
	return s[:end]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseSigned saturates at the int64 limits when the text is out of range.
func parseSigned(raw string) int64 {
	tok := leadingInteger(raw)
	if tok == "" {
		return 0
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

// parseUnsigned saturates at the uint64 limit; a negative value wraps around.
func parseUnsigned(raw string) uint64 {
	tok := leadingInteger(raw)
	if tok == "" {
		return 0
	}
	negative := tok[0] == '-'
	tok = strings.TrimLeft(tok, "+-")
	v, err := strconv.ParseUint(tok, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	if negative {
		return -v
	}
	return v
}

// parseFloat also accepts the inf and nan spellings written by formatFloat.
func parseFloat(raw string, bits int) float64 {
	tok := leadingFloat(raw)
	if tok == "" {
		rest := strings.ToLower(strings.TrimLeft(raw, numberSpace))
		sign := 1
		if strings.HasPrefix(rest, "-") {
			sign = -1
		}
		rest = strings.TrimLeft(rest, "+-")
		switch {
		case strings.HasPrefix(rest, "inf"):
			return math.Inf(sign)
		case strings.HasPrefix(rest, "nan"):
			return math.NaN()
		}
		return 0
	}
	v, err := strconv.ParseFloat(tok, bits)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return v
}

// textEscapes lists control sequences and their escaped forms.
// Order matters: substitutions run one pair at a time over the whole string.
var textEscapes = []struct {
	plain   string
	escaped string
}{
	{"\n", `\n`},
	{"\t", `\t`},
	{`"`, `\"`},
	{"\r", `\r`},
}

// EncodeText quotes s and escapes newline, tab, double quote and carriage return.
func EncodeText(s string) string {
	for _, e := range textEscapes {
		s = strings.ReplaceAll(s, e.plain, e.escaped)
	}
	return `"` + s + `"`
}

// DecodeText reverses EncodeText. Missing quotes are tolerated.
func DecodeText(raw string) string {
	for _, e := range textEscapes {
		raw = strings.ReplaceAll(raw, e.escaped, e.plain)
	}
	raw = strings.TrimPrefix(raw, `"`)
	raw = strings.TrimSuffix(raw, `"`)
	return raw
}
