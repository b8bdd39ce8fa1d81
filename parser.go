// FILE: lixenwraith/ini/parser.go
package ini

import "strings"

// LineSource supplies input one line at a time, without line terminators.
// NextLine returns ok == false once the input is exhausted.
type LineSource interface {
	NextLine() (line string, ok bool)
}

// Parse builds a document from the lines of src.
//
// Parsing never fails. Blank lines, comments (first non-blank character '#'
// or ';'), lines without '=' and lines that would reuse a section name as a
// plain key (or the reverse) are skipped. A line starting with '[' that has
// a closing ']' opens the section named between them; "[]" returns to the
// root. Keys lose their leading blanks only; values are kept verbatim.
func Parse(src LineSource) *Document {
	doc := New()
	section := ""

	for {
		line, ok := src.NextLine()
		if !ok {
			break
		}
		if line == "" {
			continue
		}

		// Section header; text after ']' is ignored
		if line[0] == '[' {
			if end := strings.IndexByte(line, ']'); end >= 0 {
				section = line[1:end]
				continue
			}
		}

		start := strings.IndexFunc(line, func(r rune) bool { return r != ' ' && r != '\t' })
		if start < 0 {
			continue
		}
		if line[start] == '#' || line[start] == ';' {
			continue
		}

		sep := strings.IndexByte(line[start:], '=')
		if sep < 0 {
			continue
		}
		key := line[start : start+sep]
		value := line[start+sep+1:]

		if section == "" {
			_ = doc.Get(key).assign(value)
			continue
		}
		if v, err := doc.Get(section).Key(key); err == nil {
			v.raw = value
		}
	}

	return doc
}
