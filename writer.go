// FILE: lixenwraith/ini/writer.go
package ini

import "fmt"

// LineSink receives output tokens in order: keys, '=', values, line breaks
// and section headers.
type LineSink interface {
	// Opened reports whether the sink can accept tokens.
	Opened() bool
	// WriteToken appends text to the output.
	WriteToken(text string) error
}

// SaveOptions configures how a document is written.
type SaveOptions struct {
	// SkipEmptyKeys omits keys with no value, and sections with no keys.
	SkipEmptyKeys bool
}

// DefaultSaveOptions returns the standard save options: every key is written.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{}
}

// Save writes the document to sink: first every plain root entry as
// key=value, then each section as a blank line, a [name] header and its
// keys. Values are written as stored, already encoded.
//
// ErrSinkNotOpen is returned before anything is written when the sink is
// not open. A failed token write aborts the save; output written so far
// should be treated as unreliable.
func (d *Document) Save(sink LineSink, opts SaveOptions) error {
	if sink == nil || !sink.Opened() {
		return ErrSinkNotOpen
	}

	w := &tokenWriter{sink: sink}

	for name, e := range d.All() {
		if e.IsSection() {
			continue
		}
		if opts.SkipEmptyKeys && e.Empty() {
			continue
		}
		w.write(name, "=", e.raw, "\n")
	}

	for name, e := range d.All() {
		if !e.IsSection() {
			continue
		}
		if opts.SkipEmptyKeys && e.Empty() {
			continue
		}
		w.write("\n", "[", name, "]", "\n")
		for key, v := range e.section.All() {
			if opts.SkipEmptyKeys && v.Empty() {
				continue
			}
			w.write(key, "=", v.raw, "\n")
		}
	}

	if w.err != nil {
		return fmt.Errorf("failed to write configuration: %w", w.err)
	}
	return nil
}

// tokenWriter stops writing after the first failed token.
type tokenWriter struct {
	sink LineSink
	err  error
}

func (w *tokenWriter) write(tokens ...string) {
	for _, t := range tokens {
		if w.err != nil {
			return
		}
		w.err = w.sink.WriteToken(t)
	}
}
