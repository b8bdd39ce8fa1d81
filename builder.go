// File: lixenwraith/ini/builder.go
package ini

import (
	"errors"
	"fmt"
	"strings"
)

// ValidatorFunc defines the signature for a function that can validate a Document.
// It receives the fully built document and should return an error if validation fails.
type ValidatorFunc func(d *Document) error

// Builder provides a fluent interface for assembling a document from
// defaults, a file, environment variables and command-line overrides.
//
// Precedence, highest first: overrides, environment, file, defaults.
// Defaults only fill keys that are missing or empty after the file is loaded.
type Builder struct {
	defaults   any
	file       string
	env        *EnvOptions
	args       []string
	validators []ValidatorFunc
}

// NewBuilder creates a new document builder
func NewBuilder() *Builder {
	return &Builder{
		validators: make([]ValidatorFunc, 0),
	}
}

// WithDefaults sets the struct containing default values
func (b *Builder) WithDefaults(defaults any) *Builder {
	b.defaults = defaults
	return b
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithEnvPrefix enables environment overrides with the default transformation
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	opts := DefaultEnvOptions(prefix)
	b.env = &opts
	return b
}

// WithEnvOptions enables environment overrides with custom options
func (b *Builder) WithEnvOptions(opts EnvOptions) *Builder {
	b.env = &opts
	return b
}

// WithArgs sets command-line overrides of the form --section.key=value,
// --key value, or --flag (which stores true). Values are stored as raw text.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build creates the document with all specified options.
// A missing file is not fatal: the document is returned together with an
// error wrapping ErrFileNotFound.
func (b *Builder) Build() (*Document, error) {
	doc := New()

	var loadErr error
	if b.file != "" {
		loaded, err := LoadFile(b.file)
		switch {
		case err == nil:
			doc = loaded
		case errors.Is(err, ErrFileNotFound):
			loadErr = err
		default:
			return nil, err
		}
	}

	if b.defaults != nil {
		defaults, err := FromStruct(b.defaults)
		if err != nil {
			return nil, fmt.Errorf("failed to register defaults: %w", err)
		}
		if err := doc.Merge(defaults, false); err != nil {
			return nil, fmt.Errorf("failed to apply defaults: %w", err)
		}
	}

	if b.env != nil {
		if err := doc.ApplyEnv(*b.env); err != nil {
			return nil, fmt.Errorf("failed to apply environment: %w", err)
		}
	}

	overrides, err := parseOverrides(b.args)
	if err != nil {
		return nil, err
	}
	for _, o := range overrides {
		cell, err := doc.Resolve(o.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOverrideParse, err)
		}
		if err := Put(cell, Raw(o.value)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOverrideParse, err)
		}
	}

	for _, validator := range b.validators {
		if err := validator(doc); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
	}

	// ErrFileNotFound or nil
	return doc, loadErr
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Document {
	doc, err := b.Build()
	if err != nil {
		// A missing file is not fatal; the document holds defaults and overrides
		if !errors.Is(err, ErrFileNotFound) {
			panic(fmt.Sprintf("ini build failed: %v", err))
		}
	}
	return doc
}

// BuildAndScan builds the document and decodes it into target.
func (b *Builder) BuildAndScan(target any) error {
	doc, err := b.Build()
	if err != nil && !errors.Is(err, ErrFileNotFound) {
		return err
	}

	if scanErr := doc.Scan(target); scanErr != nil {
		return fmt.Errorf("failed to scan final document into target: %w", scanErr)
	}

	// ErrFileNotFound or nil
	return err
}

// override is one command-line assignment.
type override struct {
	path  string
	value string
}

// parseOverrides processes command-line arguments into ordered assignments.
// Arguments not starting with "--" are skipped, as is a bare "--".
func parseOverrides(args []string) ([]override, error) {
	var result []override
	i := 0
	for i < len(args) {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			i++
			continue
		}

		argContent := strings.TrimPrefix(arg, "--")
		if argContent == "" {
			i++
			continue
		}

		var keyPath, valueStr string
		if key, value, found := strings.Cut(argContent, "="); found {
			// --key=value
			keyPath, valueStr = key, value
			i++
		} else if i+1 >= len(args) || strings.HasPrefix(args[i+1], "--") {
			// --flag
			keyPath, valueStr = argContent, "true"
			i++
		} else {
			// --key value
			keyPath, valueStr = argContent, args[i+1]
			i += 2
		}

		if keyPath == "" || strings.HasPrefix(keyPath, ".") || strings.HasSuffix(keyPath, ".") {
			return nil, fmt.Errorf("%w: invalid key path in %q", ErrOverrideParse, arg)
		}
		result = append(result, override{path: keyPath, value: valueStr})
	}
	return result, nil
}
