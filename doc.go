// File: lixenwraith/ini/doc.go

// Package ini reads and writes INI files whose values keep their Go types.
//
// INI is text only, so every value is stored in an encoded textual form:
//
//	debug=true
//	retries=3
//	ratio=0.25
//	name="api \"edge\"\tnode"
//	ports=[80,443]
//
//	[server]
//	host="localhost"
//
// Booleans are true/false, integers are decimal, floats carry enough digits
// to round-trip exactly, text is double-quoted with \n, \t, \" and \r
// escapes, and arrays are bracketed lists of encoded elements.
//
// Quick Start:
//
//	doc := ini.New()
//	doc.Get("debug").Set(true)
//	doc.Get("server").MustKey("port").Set(8080)
//	if err := doc.SaveFile("app.ini", ini.DefaultSaveOptions()); err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := ini.LoadFile("app.ini")
//	port := doc.Get("server").MustKey("port").Int(80)
//	level := ini.Get(doc.Get("level"), int8(1))
//
// Document Model:
// A document holds root entries in lexical order. Each entry is unset until
// first used: Set makes it a plain value, Key makes it a section of keys.
// Using an entry as the other kind afterwards returns ErrKindConflict.
// Looking up a name creates it, like indexing a map that fills in blanks.
//
// Tolerance:
// Parsing never fails on content. Comment lines (# or ;), blank lines and
// lines without '=' are skipped, and reading a malformed value yields the
// caller's default or the zero value. Only I/O problems are errors.
//
// Beyond the core codec, the package can scan a document into structs
// (mapstructure), build one from structs or maps, convert to and from TOML,
// JSON and YAML, act as a koanf parser, and assemble configuration from
// defaults, a file, environment variables and command-line overrides
// through Builder.
//
// Thread Safety:
// Documents are plain in-memory values with no locking. Callers sharing a
// document between goroutines must serialize access.
package ini
