// FILE: lixenwraith/ini/array.go
package ini

import (
	"iter"
	"slices"
	"strings"
)

// EncodeArray encodes values as a bracketed, comma separated array.
func EncodeArray[T Scalar](values []T) string {
	return EncodeSeq(slices.Values(values))
}

// EncodeSeq encodes any finite ordered sequence as an array.
// It lets other containers (a container/list, a channel drained into a
// sequence) share the same encoding as slices.
func EncodeSeq[T Scalar](seq iter.Seq[T]) string {
	var b strings.Builder
	b.WriteByte('[')
	sep := false
	for v := range seq {
		if sep {
			b.WriteByte(',')
		}
		sep = true
		b.WriteString(Encode(v))
	}
	b.WriteByte(']')
	return b.String()
}

// DecodeArray decodes every element of an encoded array.
// Text without brackets, or an empty array, decodes to an empty slice.
func DecodeArray[T Scalar](raw string) []T {
	parts := SplitArray(raw)
	out := make([]T, 0, len(parts))
	for _, p := range parts {
		out = append(out, Decode[T](p))
	}
	return out
}

// SplitArray returns the still-encoded elements between the first '[' and
// the last ']' of raw.
//
// A quoted element runs to the next double quote not preceded by a backslash
// and keeps both quotes, so commas inside text do not split it. An unquoted
// element runs to the next ',' or ']'. Commas between elements are skipped.
func SplitArray(raw string) []string {
	b := strings.IndexByte(raw, '[')
	e := strings.LastIndexByte(raw, ']')
	if b < 0 || e < 0 || b+1 >= e {
		return nil
	}

	var parts []string
	pos := b + 1
	for pos < len(raw) {
		if raw[pos] == ']' {
			break
		}
		if raw[pos] == ',' {
			pos++
			continue
		}

		var end int
		if raw[pos] == '"' {
			end = closingQuote(raw, pos)
			if end < 0 {
				break
			}
			end++ // keep the closing quote
		} else {
			end = strings.IndexAny(raw[pos:], ",]")
			if end < 0 {
				break
			}
			end += pos
		}

		parts = append(parts, raw[pos:end])
		pos = end
	}
	return parts
}

// closingQuote finds the unescaped quote that closes the one at open.
func closingQuote(s string, open int) int {
	for i := open + 1; i < len(s); i++ {
		if s[i] == '"' && s[i-1] != '\\' {
			return i
		}
	}
	return -1
}
