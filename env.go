// FILE: lixenwraith/ini/env.go
package ini

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// EnvTransformFunc converts a key path to an environment variable name
type EnvTransformFunc func(path string) string

// EnvOptions configures how environment variables override document keys
type EnvOptions struct {
	// Prefix is prepended to environment variable names
	// Example: "MYAPP_" transforms "server.port" to "MYAPP_SERVER_PORT"
	Prefix string

	// Transform customizes how paths map to environment variables
	// If nil, uses default transformation (dots to underscores, uppercase)
	Transform EnvTransformFunc

	// Whitelist limits which paths are checked for env vars (nil = all)
	Whitelist map[string]bool
}

// DefaultEnvOptions returns env options using the default transformation
func DefaultEnvOptions(prefix string) EnvOptions {
	return EnvOptions{Prefix: prefix}
}

func (o EnvOptions) transform() EnvTransformFunc {
	if o.Transform != nil {
		return o.Transform
	}
	return defaultEnvTransform(o.Prefix)
}

// ApplyEnv overrides keys already present in the document with the
// environment variables they map to. Text keys are re-encoded; other keys
// store the variable as raw text.
func (d *Document) ApplyEnv(opts EnvOptions) error {
	transform := opts.transform()
	var errs []error

	for path, cell := range d.paths() {
		if opts.Whitelist != nil && !opts.Whitelist[path] {
			continue
		}
		value, exists := os.LookupEnv(transform(path))
		if !exists {
			continue
		}
		if err := storeOverride(cell, value); err != nil {
			errs = append(errs, fmt.Errorf("env %s: %w", transform(path), err))
		}
	}

	return errors.Join(errs...)
}

// DiscoverEnv finds all environment variables matching document keys
// and returns a map of path -> env var name for found variables
func (d *Document) DiscoverEnv(opts EnvOptions) map[string]string {
	transform := opts.transform()
	discovered := make(map[string]string)

	for path := range d.paths() {
		envVar := transform(path)
		if _, exists := os.LookupEnv(envVar); exists {
			discovered[path] = envVar
		}
	}
	return discovered
}

// ExportEnv returns every key holding a value as env var name -> text.
// Text values are decoded; everything else is exported as stored.
func (d *Document) ExportEnv(opts EnvOptions) map[string]string {
	transform := opts.transform()
	exports := make(map[string]string)

	for path, cell := range d.paths() {
		if cell.Empty() {
			continue
		}
		value := cell.Raw()
		if strings.HasPrefix(value, `"`) {
			value = DecodeText(value)
		}
		exports[transform(path)] = value
	}
	return exports
}

// defaultEnvTransform creates the default environment variable transformer
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(path string) string {
		env := strings.ReplaceAll(path, ".", "_")
		env = strings.ToUpper(env)
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}

// storeOverride writes text from outside the file into a cell. A cell
// already holding quoted text keeps being text; anything else is raw.
func storeOverride(c Cell, value string) error {
	if strings.HasPrefix(c.Raw(), `"`) {
		return Put(c, value)
	}
	return Put(c, Raw(value))
}
