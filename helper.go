// File: lixenwraith/ini/helper.go
package ini

import (
	"errors"
	"fmt"
	"strings"
)

// flattenMap converts nested maps (and structs) to a flat map with
// dot-notation paths.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		newPath := key
		if prefix != "" {
			newPath = prefix + "." + key
		}

		// Check if the value is a map that can be further flattened
		if nestedMap, isMap := asMap(value); isMap {
			for subPath, subValue := range flattenMap(nestedMap, newPath) {
				flat[subPath] = subValue
			}
		} else {
			flat[newPath] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation path,
// creating intermediate maps as needed. A path that runs through an existing
// value, or that names an existing map, is refused with ErrNestingConflict.
func setNestedValue(nested map[string]any, path string, value any) error {
	segments := strings.Split(path, ".")
	current := nested

	for i, segment := range segments[:len(segments)-1] {
		next, exists := current[segment]
		if !exists {
			newMap := make(map[string]any)
			current[segment] = newMap
			current = newMap
			continue
		}
		nextMap, isMap := next.(map[string]any)
		if !isMap {
			return fmt.Errorf("%w: %q holds a value", ErrNestingConflict, strings.Join(segments[:i+1], "."))
		}
		current = nextMap
	}

	lastSegment := segments[len(segments)-1]
	if _, isMap := current[lastSegment].(map[string]any); isMap {
		return fmt.Errorf("%w: %q has nested keys", ErrNestingConflict, path)
	}
	current[lastSegment] = value
	return nil
}

// nestedMap returns the document as Map does, but with dotted section keys
// expanded back into nested maps. Empty cells are left out: the other formats
// have no unset value, and an empty string would come back as encoded text.
// Keys that are both a value and the parent of dotted keys are reported
// together.
func (d *Document) nestedMap() (map[string]any, error) {
	out := make(map[string]any, len(d.entries))
	var errs []error
	for name, e := range d.All() {
		if !e.IsSection() {
			if !e.Empty() {
				out[name] = Infer(e.raw)
			}
			continue
		}
		section := make(map[string]any)
		for key, v := range e.section.All() {
			if v.Empty() {
				continue
			}
			if err := setNestedValue(section, key, Infer(v.raw)); err != nil {
				errs = append(errs, fmt.Errorf("section %s: %w", name, err))
			}
		}
		out[name] = section
	}
	return out, errors.Join(errs...)
}
