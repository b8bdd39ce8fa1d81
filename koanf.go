// FILE: lixenwraith/ini/koanf.go
package ini

import (
	"bytes"

	"github.com/knadh/koanf/v2"
)

// KoanfParser lets koanf load and write typed INI documents.
//
//	k := koanf.New(".")
//	err := k.Load(file.Provider("app.ini"), ini.Parser())
type KoanfParser struct {
	// Options apply when koanf marshals a config back to INI.
	Options SaveOptions
}

var _ koanf.Parser = (*KoanfParser)(nil)

// Parser returns a KoanfParser with default save options.
func Parser() *KoanfParser {
	return &KoanfParser{Options: DefaultSaveOptions()}
}

// Unmarshal parses INI bytes into nested maps of inferred values.
func (p *KoanfParser) Unmarshal(b []byte) (map[string]any, error) {
	doc, err := Load(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	return doc.nestedMap()
}

// Marshal writes nested maps as INI. Maps deeper than one level are flattened
// into dotted keys within their top-level section.
func (p *KoanfParser) Marshal(m map[string]any) ([]byte, error) {
	doc, err := FromMap(m)
	if err != nil {
		return nil, err
	}
	return doc.Bytes(p.Options), nil
}
