// File: lixenwraith/ini/convenience.go
package ini

import (
	"errors"
	"flag"
	"fmt"
	"iter"
	"os"
	"strings"
)

// Quick builds a document from defaults, the file at path, and overrides
// from os.Args. A missing file is reported as ErrFileNotFound alongside a
// usable document.
func Quick(defaults any, path string) (*Document, error) {
	return NewBuilder().
		WithDefaults(defaults).
		WithFile(path).
		WithArgs(os.Args[1:]).
		Build()
}

// MustQuick is like Quick but panics on error
func MustQuick(defaults any, path string) *Document {
	doc, err := Quick(defaults, path)
	if err != nil && !errors.Is(err, ErrFileNotFound) {
		panic(fmt.Sprintf("ini initialization failed: %v", err))
	}
	return doc
}

// GenerateFlags creates a flag for every key of the document, named by its
// path ("key" or "section.key"). The flag type follows the inferred type of
// the current value, which is also the flag default.
//
// A key whose path resolves to a different cell (a root key or a section
// name containing a dot) gets no flag, so each flag name is defined once and
// ApplyFlags writes back to the key the flag was made from.
func (d *Document) GenerateFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("ini", flag.ContinueOnError)

	for path, v := range d.paths() {
		if c, found := d.LookupPath(path); !found || c != v {
			continue
		}
		usage := fmt.Sprintf("Config: %s", path)
		switch x := Infer(v.Raw()).(type) {
		case bool:
			fs.Bool(path, x, usage)
		case int64:
			fs.Int64(path, x, usage)
		case uint64:
			fs.Uint64(path, x, usage)
		case float64:
			fs.Float64(path, x, usage)
		case string:
			fs.String(path, x, usage)
		default:
			// Arrays are edited in their encoded form
			fs.String(path, v.Raw(), usage)
		}
	}

	return fs
}

// ApplyFlags writes back the flags that were set on the command line.
// Text keys are re-encoded; other keys store the flag text as raw.
func (d *Document) ApplyFlags(fs *flag.FlagSet) error {
	var errs []error

	fs.Visit(func(f *flag.Flag) {
		cell, err := d.Resolve(f.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("flag %s: %w", f.Name, err))
			return
		}
		if err := storeOverride(cell, f.Value.String()); err != nil {
			errs = append(errs, fmt.Errorf("flag %s: %w", f.Name, err))
		}
	})

	return errors.Join(errs...)
}

// Validate checks that every listed path ("key" or "section.key") exists
// and holds a value.
func (d *Document) Validate(required ...string) error {
	var missing []string
	for _, path := range required {
		if c, found := d.LookupPath(path); !found || c.Empty() {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Clone creates a deep copy of the document
func (d *Document) Clone() *Document {
	clone := New()
	for name, e := range d.entries {
		ce := &Entry{name: name, kind: e.kind}
		ce.raw = e.raw
		if e.section != nil {
			ce.section = newSection(name)
			for key, v := range e.section.keys {
				ce.section.keys[key] = &Value{raw: v.raw}
			}
		}
		clone.entries[name] = ce
	}
	return clone
}

// paths iterates over every cell by path: root values first, then section
// keys, each in lexical order.
func (d *Document) paths() iter.Seq2[string, Cell] {
	return func(yield func(string, Cell) bool) {
		for name, e := range d.All() {
			if e.IsSection() {
				continue
			}
			if !yield(name, e) {
				return
			}
		}
		for name, s := range d.Sections() {
			for key, v := range s.All() {
				if !yield(name+"."+key, v) {
					return
				}
			}
		}
	}
}
