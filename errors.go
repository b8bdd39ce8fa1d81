// FILE: lixenwraith/ini/errors.go
package ini

import "errors"

// Sentinel errors returned by the package. Data-shape problems in the input
// (malformed lines, undecodable values) are never reported as errors.
var (
	// ErrSinkNotOpen is returned by Save when the line sink cannot accept output.
	ErrSinkNotOpen = errors.New("ini: output sink is not open")

	// ErrFileNotFound is returned when a configuration file does not exist.
	// Builder treats it as non-fatal.
	ErrFileNotFound = errors.New("ini: configuration file not found")

	// ErrKindConflict is returned when an entry used as a plain value is
	// indexed as a section, or a section is assigned a plain value.
	ErrKindConflict = errors.New("ini: entry kind conflict")

	// ErrUnsupportedType is returned when a value has no textual encoding.
	ErrUnsupportedType = errors.New("ini: unsupported value type")

	// ErrUnknownFormat is returned for an unrecognized conversion format.
	ErrUnknownFormat = errors.New("ini: unknown format")

	// ErrNestingConflict is returned when a key cannot be nested for a
	// conversion because it is both a value and the parent of dotted keys.
	ErrNestingConflict = errors.New("ini: key is both a value and a table")

	// ErrOverrideParse is returned for malformed command-line overrides.
	ErrOverrideParse = errors.New("ini: failed to parse override")
)
