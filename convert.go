// FILE: lixenwraith/ini/convert.go
package ini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding for Export and Import.
type Format string

const (
	FormatINI  Format = "ini"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name. An empty name is FormatINI.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatINI, nil
	case FormatINI, FormatTOML, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "tml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// DetectFormat determines format from file extension.
// It returns "" when the extension is not recognized.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini", ".conf", ".cfg":
		return FormatINI
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing.
// INI is the fallback since its parser accepts any input.
func detectFormatFromContent(data []byte) Format {
	// Try JSON first (strict format)
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	// TOML before YAML: a flat key = value file is valid YAML as a single string
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return FormatINI
}

// Export writes the document to w in format. Values are written as their
// inferred Go types (see Infer); dotted keys within a section become nested
// tables or objects. Empty keys are left out of the other formats. A key
// that is both a value and the parent of dotted keys fails the export with
// ErrNestingConflict before anything is written.
func (d *Document) Export(w io.Writer, format Format) error {
	if format == FormatINI || format == "" {
		_, err := d.WriteTo(w)
		return err
	}

	nested, err := d.nestedMap()
	if err != nil {
		return err
	}

	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(nested); err != nil {
			return fmt.Errorf("failed to marshal document to TOML: %w", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(nested); err != nil {
			return fmt.Errorf("failed to marshal document to JSON: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(nested); err != nil {
			return fmt.Errorf("failed to marshal document to YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// Import reads a document in format from r. An empty format is detected
// from the content.
func Import(r io.Reader, format Format) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	if format == "" {
		format = detectFormatFromContent(data)
	}

	parsed := make(map[string]any)
	switch format {
	case FormatINI:
		return Load(bytes.NewReader(data))
	case FormatTOML:
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&parsed); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return FromMap(parsed)
}
