// FILE: lixenwraith/ini/document.go
package ini

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Kind tells whether a root entry holds a plain value or a section.
type Kind int

const (
	// KindUnset entries have been looked up but neither assigned nor indexed.
	KindUnset Kind = iota
	// KindValue entries hold a single value.
	KindValue
	// KindSection entries hold named sub-keys.
	KindSection
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindValue:
		return "value"
	case KindSection:
		return "section"
	default:
		return "unset"
	}
}

// Section is a named group of keys.
type Section struct {
	name string
	keys map[string]*Value
}

func newSection(name string) *Section {
	return &Section{
		name: name,
		keys: make(map[string]*Value),
	}
}

// Name returns the section name.
func (s *Section) Name() string {
	return s.name
}

// Key returns the value stored under name, creating an empty one if absent.
func (s *Section) Key(name string) *Value {
	v, exists := s.keys[name]
	if !exists {
		v = &Value{}
		s.keys[name] = v
	}
	return v
}

// Lookup returns the value stored under name without creating it.
func (s *Section) Lookup(name string) (*Value, bool) {
	v, exists := s.keys[name]
	return v, exists
}

// Has reports whether the key exists.
func (s *Section) Has(name string) bool {
	_, exists := s.keys[name]
	return exists
}

// Delete removes a key.
func (s *Section) Delete(name string) {
	delete(s.keys, name)
}

// Len returns the number of keys.
func (s *Section) Len() int {
	return len(s.keys)
}

// Names returns the key names in lexical order.
func (s *Section) Names() []string {
	return slices.Sorted(maps.Keys(s.keys))
}

// All iterates over the keys in lexical order.
func (s *Section) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		for _, name := range s.Names() {
			if !yield(name, s.keys[name]) {
				return
			}
		}
	}
}

// Entry is a named slot at the root of a document.
//
// An entry starts unset. The first Set makes it a plain value and the first
// Key makes it a section; after that the other kind of access fails with
// ErrKindConflict and leaves the entry unchanged. A section entry has no
// text of its own.
type Entry struct {
	raw     string
	name    string
	kind    Kind
	section *Section
}

// Name returns the entry name.
func (e *Entry) Name() string {
	return e.name
}

// Raw returns the stored text of a plain entry.
func (e *Entry) Raw() string {
	return e.raw
}

// Bool returns the stored boolean, or def when the entry is empty.
func (e *Entry) Bool(def bool) bool { return Get(e, def) }

// Int returns the stored integer, or def when the entry is empty.
func (e *Entry) Int(def int) int { return Get(e, def) }

// Int64 returns the stored integer, or def when the entry is empty.
func (e *Entry) Int64(def int64) int64 { return Get(e, def) }

// Uint64 returns the stored unsigned integer, or def when the entry is empty.
func (e *Entry) Uint64(def uint64) uint64 { return Get(e, def) }

// Float64 returns the stored float, or def when the entry is empty.
func (e *Entry) Float64(def float64) float64 { return Get(e, def) }

// Text returns the stored string, or def when the entry is empty.
func (e *Entry) Text(def string) string { return Get(e, def) }

// Strings returns the stored array decoded as text elements.
func (e *Entry) Strings() []string { return GetArray[string](e) }

// Kind returns the entry kind.
func (e *Entry) Kind() Kind {
	return e.kind
}

// IsSection reports whether the entry has been used as a section.
func (e *Entry) IsSection() bool {
	return e.kind == KindSection
}

// Set encodes x as the entry's value.
func (e *Entry) Set(x any) error {
	raw, err := encodeAny(x)
	if err != nil {
		return err
	}
	return e.assign(raw)
}

func (e *Entry) assign(raw string) error {
	if e.kind == KindSection {
		return fmt.Errorf("%w: cannot assign a value to section %q", ErrKindConflict, e.name)
	}
	e.kind = KindValue
	e.raw = raw
	return nil
}

// Key returns the sub-key name of this section, creating it if absent.
// An unset entry becomes a section.
func (e *Entry) Key(name string) (*Value, error) {
	s, err := e.asSection()
	if err != nil {
		return nil, err
	}
	return s.Key(name), nil
}

// MustKey is like Key but panics on a kind conflict.
func (e *Entry) MustKey(name string) *Value {
	v, err := e.Key(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Section returns the entry's keys, or nil if it is not a section.
func (e *Entry) Section() *Section {
	if e.kind != KindSection {
		return nil
	}
	return e.section
}

func (e *Entry) asSection() (*Section, error) {
	switch e.kind {
	case KindValue:
		return nil, fmt.Errorf("%w: %q holds a value, not a section", ErrKindConflict, e.name)
	case KindUnset:
		e.kind = KindSection
		e.section = newSection(e.name)
	}
	return e.section, nil
}

// Clear removes the value and every sub-key. The kind is kept.
func (e *Entry) Clear() {
	e.raw = ""
	if e.section != nil {
		clear(e.section.keys)
	}
}

// Empty reports whether a value entry has no text, or a section has no keys.
func (e *Entry) Empty() bool {
	if e.kind == KindSection {
		return e.section.Len() == 0
	}
	return e.raw == ""
}

// Count returns the number of keys the entry contributes to its document:
// the number of sub-keys for a section, 1 otherwise.
func (e *Entry) Count() int {
	if e.kind == KindSection {
		return e.section.Len()
	}
	return 1
}

// Document is the root of a configuration: plain keys plus sections of keys.
// Names are iterated and written in lexical order.
//
// A Document is not safe for concurrent use.
type Document struct {
	entries map[string]*Entry
}

// New creates an empty document.
func New() *Document {
	return &Document{
		entries: make(map[string]*Entry),
	}
}

// Get returns the entry called name, creating an unset one if absent.
func (d *Document) Get(name string) *Entry {
	e, exists := d.entries[name]
	if !exists {
		e = &Entry{name: name}
		d.entries[name] = e
	}
	return e
}

// Lookup returns the entry called name without creating it.
func (d *Document) Lookup(name string) (*Entry, bool) {
	e, exists := d.entries[name]
	return e, exists
}

// Has reports whether an entry exists.
func (d *Document) Has(name string) bool {
	_, exists := d.entries[name]
	return exists
}

// Delete removes an entry and, for a section, all of its keys.
func (d *Document) Delete(name string) {
	delete(d.entries, name)
}

// Section returns the section called name, creating it if absent.
func (d *Document) Section(name string) (*Section, error) {
	return d.Get(name).asSection()
}

// Resolve returns the cell addressed by a "section.key" path,
// or the root entry when path has no dot.
func (d *Document) Resolve(path string) (Cell, error) {
	if path == "" {
		return nil, fmt.Errorf("empty key path")
	}
	section, key, nested := strings.Cut(path, ".")
	if !nested {
		return d.Get(path), nil
	}
	if section == "" || key == "" {
		return nil, fmt.Errorf("invalid key path %q", path)
	}
	v, err := d.Get(section).Key(key)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// LookupPath returns the cell that Resolve would address, without creating
// anything. Section entries are not cells and are never returned.
func (d *Document) LookupPath(path string) (Cell, bool) {
	section, key, nested := strings.Cut(path, ".")
	if !nested {
		e, exists := d.entries[path]
		if !exists || e.IsSection() {
			return nil, false
		}
		return e, true
	}
	e, exists := d.entries[section]
	if !exists || !e.IsSection() {
		return nil, false
	}
	v, exists := e.section.Lookup(key)
	if !exists {
		return nil, false
	}
	return v, true
}

// Count returns the number of keys: one per plain entry plus every key of
// every section.
func (d *Document) Count() int {
	n := 0
	for _, e := range d.entries {
		n += e.Count()
	}
	return n
}

// Len returns the number of root entries.
func (d *Document) Len() int {
	return len(d.entries)
}

// Names returns the root entry names in lexical order.
func (d *Document) Names() []string {
	return slices.Sorted(maps.Keys(d.entries))
}

// All iterates over root entries in lexical order.
func (d *Document) All() iter.Seq2[string, *Entry] {
	return func(yield func(string, *Entry) bool) {
		for _, name := range d.Names() {
			if !yield(name, d.entries[name]) {
				return
			}
		}
	}
}

// Sections iterates over the section entries in lexical order.
func (d *Document) Sections() iter.Seq2[string, *Section] {
	return func(yield func(string, *Section) bool) {
		for name, e := range d.All() {
			if !e.IsSection() {
				continue
			}
			if !yield(name, e.section) {
				return
			}
		}
	}
}

// Clear removes every entry.
func (d *Document) Clear() {
	clear(d.entries)
}

// Empty reports whether the document has no entries.
func (d *Document) Empty() bool {
	return len(d.entries) == 0
}

// Merge copies the values of src into d. Unless overwrite is set, only cells
// that are empty in d are written. Kind conflicts are collected and returned
// together; non-conflicting values are still merged.
func (d *Document) Merge(src *Document, overwrite bool) error {
	var errs []error
	for name, se := range src.All() {
		switch se.kind {
		case KindValue:
			de := d.Get(name)
			if !overwrite && !de.Empty() {
				continue
			}
			if err := de.assign(se.raw); err != nil {
				errs = append(errs, err)
			}
		case KindSection:
			ds, err := d.Section(name)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for key, sv := range se.section.All() {
				dv := ds.Key(key)
				if overwrite || dv.Empty() {
					dv.raw = sv.raw
				}
			}
		}
	}
	return errors.Join(errs...)
}
