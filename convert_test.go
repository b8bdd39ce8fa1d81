// FILE: lixenwraith/ini/convert_test.go
package ini

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const convertINI = `debug=true
name="svc"

[server]
host="localhost"
limits.max=10
port=8080
tags=["a","b"]
`

func loadConvertDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := LoadString(convertINI)
	require.NoError(t, err)
	return doc
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"", FormatINI},
		{"ini", FormatINI},
		{"TOML", FormatTOML},
		{"tml", FormatTOML},
		{"json", FormatJSON},
		{"yml", FormatYAML},
		{"yaml", FormatYAML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.name)
		require.NoError(t, err, "format %q", tt.name)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatINI, DetectFormat("app.ini"))
	assert.Equal(t, FormatINI, DetectFormat("/etc/app/app.conf"))
	assert.Equal(t, FormatINI, DetectFormat("app.CFG"))
	assert.Equal(t, FormatTOML, DetectFormat("app.toml"))
	assert.Equal(t, FormatJSON, DetectFormat("app.json"))
	assert.Equal(t, FormatYAML, DetectFormat("app.yml"))
	assert.Equal(t, Format(""), DetectFormat("app.txt"))
}

func TestExport(t *testing.T) {
	doc := loadConvertDoc(t)

	t.Run("INI", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, doc.Export(&buf, FormatINI))
		assert.Equal(t, convertINI, buf.String())
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, doc.Export(&buf, FormatJSON))

		var out map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, true, out["debug"])
		assert.Equal(t, "svc", out["name"])

		server := out["server"].(map[string]any)
		assert.Equal(t, float64(8080), server["port"])
		assert.Equal(t, []any{"a", "b"}, server["tags"])
		assert.Equal(t, map[string]any{"max": float64(10)}, server["limits"])
	})

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, doc.Export(&buf, FormatTOML))
		assert.Contains(t, buf.String(), "[server.limits]")

		var out map[string]any
		_, err := toml.Decode(buf.String(), &out)
		require.NoError(t, err)
		server := out["server"].(map[string]any)
		assert.Equal(t, int64(8080), server["port"])
		assert.Equal(t, "localhost", server["host"])
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, doc.Export(&buf, FormatYAML))

		var out map[string]any
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, "svc", out["name"])
		server := out["server"].(map[string]any)
		assert.Equal(t, 8080, server["port"])
	})

	t.Run("Unknown", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, doc.Export(&buf, Format("xml")), ErrUnknownFormat)
	})
}

func TestImport(t *testing.T) {
	t.Run("RoundTrips", func(t *testing.T) {
		for _, format := range []Format{FormatINI, FormatTOML, FormatJSON, FormatYAML} {
			t.Run(string(format), func(t *testing.T) {
				original := loadConvertDoc(t)

				var buf bytes.Buffer
				require.NoError(t, original.Export(&buf, format))

				imported, err := Import(&buf, format)
				require.NoError(t, err)
				assert.Equal(t, original.String(), imported.String())
			})
		}
	})

	t.Run("DetectFromContent", func(t *testing.T) {
		tests := []struct {
			name  string
			input string
		}{
			{"JSON", `{"server": {"port": 8080}}`},
			{"TOML", "[server]\nport = 8080\n"},
			{"YAML", "server:\n  port: 8080\n"},
			{"INI", "[server]\nport=8080\nempty=\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				doc, err := Import(strings.NewReader(tt.input), "")
				require.NoError(t, err)
				assert.Equal(t, 8080, doc.Get("server").MustKey("port").Int(0))
			})
		}
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := Import(strings.NewReader("{broken"), FormatJSON)
		assert.Error(t, err)

		_, err = Import(strings.NewReader("x"), Format("xml"))
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestConvertEmptyKeys(t *testing.T) {
	const input = "blank=\"\"\nunset=\n\n[s]\nk=1\nnone=\n"

	for _, format := range []Format{FormatJSON, FormatTOML, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			doc, err := LoadString(input)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, doc.Export(&buf, format))
			assert.NotContains(t, buf.String(), "unset")
			assert.NotContains(t, buf.String(), "none")

			imported, err := Import(&buf, format)
			require.NoError(t, err)

			assert.Equal(t, 7, imported.Get("unset").Int(7), "unset keys keep returning the default")
			assert.True(t, imported.Get("unset").Empty())
			assert.True(t, imported.Get("s").MustKey("none").Empty())
			assert.Equal(t, `""`, imported.Get("blank").Raw(), "an encoded empty string survives")
			assert.Equal(t, 1, imported.Get("s").MustKey("k").Int(0))
			assert.Equal(t, "blank=\"\"\n\n[s]\nk=1\n", string(imported.Bytes(SaveOptions{SkipEmptyKeys: true})))
		})
	}
}

func TestExportNestingConflict(t *testing.T) {
	doc, err := LoadString("[s]\nx=1\nx.y=2\nz=3\n")
	require.NoError(t, err)

	var buf bytes.Buffer
	err = doc.Export(&buf, FormatJSON)
	assert.ErrorIs(t, err, ErrNestingConflict)
	assert.Contains(t, err.Error(), "section s")
	assert.Zero(t, buf.Len(), "nothing is written on a conflict")

	require.NoError(t, doc.Export(&buf, FormatINI), "INI keeps dotted keys flat")
	assert.Equal(t, "[s]\nx=1\nx.y=2\nz=3\n", buf.String())

	_, err = Parser().Unmarshal([]byte("[s]\nx=1\nx.y=2\n"))
	assert.ErrorIs(t, err, ErrNestingConflict)

	t.Run("DeeperKeyFirst", func(t *testing.T) {
		nested := make(map[string]any)
		require.NoError(t, setNestedValue(nested, "a.b", 1))
		assert.ErrorIs(t, setNestedValue(nested, "a", 2), ErrNestingConflict)
		assert.Equal(t, map[string]any{"a": map[string]any{"b": 1}}, nested)
	})
}
