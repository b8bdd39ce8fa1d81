// FILE: lixenwraith/ini/parser_test.go
package ini

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseLines(lines ...string) *Document {
	return Parse(NewSliceSource(lines))
}

func TestParse(t *testing.T) {
	t.Run("RootAndSections", func(t *testing.T) {
		doc := parseLines(
			"name=\"app\"",
			"debug=true",
			"",
			"[server]",
			"host=\"localhost\"",
			"port=8080",
			"",
			"[client]",
			"retries=3",
		)

		assert.Equal(t, "app", doc.Get("name").Text(""))
		assert.True(t, doc.Get("debug").Bool(false))
		assert.Equal(t, "localhost", doc.Get("server").MustKey("host").Text(""))
		assert.Equal(t, 8080, doc.Get("server").MustKey("port").Int(0))
		assert.Equal(t, 3, doc.Get("client").MustKey("retries").Int(0))
		assert.Equal(t, 5, doc.Count())
	})

	t.Run("CommentsAndBlankLines", func(t *testing.T) {
		doc := parseLines(
			"# comment",
			"; another comment",
			"   # indented comment",
			"\t; tabbed comment",
			"   ",
			"",
			"a=1",
		)
		assert.Equal(t, []string{"a"}, doc.Names())
	})

	t.Run("IndentedKeys", func(t *testing.T) {
		doc := parseLines("[s]", "  key=1", "\tother=2")
		s := doc.Get("s")
		assert.Equal(t, 1, s.MustKey("key").Int(0))
		assert.Equal(t, 2, s.MustKey("other").Int(0))
	})

	t.Run("KeysKeepTrailingBlanksValuesVerbatim", func(t *testing.T) {
		doc := parseLines("key = value ")
		e, exists := doc.Lookup("key ")
		require.True(t, exists)
		assert.Equal(t, " value ", e.Raw())
	})

	t.Run("ValueMayContainEquals", func(t *testing.T) {
		doc := parseLines("expr=a=b")
		assert.Equal(t, "a=b", doc.Get("expr").Raw())
	})

	t.Run("EmptyValues", func(t *testing.T) {
		doc := parseLines("unset=", `blank=""`)

		assert.True(t, doc.Get("unset").Empty())
		assert.Equal(t, KindValue, doc.Get("unset").Kind())
		assert.Equal(t, 9, doc.Get("unset").Int(9))

		assert.False(t, doc.Get("blank").Empty())
		assert.Equal(t, "", doc.Get("blank").Text("x"))
	})

	t.Run("MalformedLinesSkipped", func(t *testing.T) {
		doc := parseLines(
			"no separator here",
			"[unterminated",
			"=orphan",
			"ok=1",
		)
		// "[unterminated" has no ']' and no '=', so it is skipped too
		assert.Equal(t, []string{"", "ok"}, doc.Names())
		assert.Equal(t, "orphan", doc.Get("").Raw())
	})

	t.Run("InvalidTypedValues", func(t *testing.T) {
		doc := parseLines("flag=10", "count=abc", "ratio=1.5x")
		assert.False(t, doc.Get("flag").Bool(true))
		assert.Equal(t, 0, doc.Get("count").Int(5))
		assert.Equal(t, 1.5, doc.Get("ratio").Float64(0))
	})

	t.Run("HeaderTextAfterBracketIgnored", func(t *testing.T) {
		doc := parseLines("[s] trailing", "k=1")
		assert.Equal(t, 1, doc.Get("s").MustKey("k").Int(0))
	})

	t.Run("IndentedHeaderIsNotHeader", func(t *testing.T) {
		doc := parseLines("  [s]", "k=1")
		assert.False(t, doc.Has("s"))
		assert.Equal(t, 1, doc.Get("k").Int(0))
	})

	t.Run("EmptyHeaderReturnsToRoot", func(t *testing.T) {
		doc := parseLines("[s]", "a=1", "[]", "b=2")
		assert.Equal(t, 1, doc.Get("s").MustKey("a").Int(0))
		assert.Equal(t, 2, doc.Get("b").Int(0))
		assert.False(t, doc.Get("s").Section().Has("b"))
	})

	t.Run("RepeatedSectionsMerge", func(t *testing.T) {
		doc := parseLines("[s]", "a=1", "[t]", "x=0", "[s]", "b=2", "a=3")
		s := doc.Get("s").Section()
		require.NotNil(t, s)
		assert.Equal(t, []string{"a", "b"}, s.Names())
		assert.Equal(t, 3, s.Key("a").Int(0), "last assignment wins")
	})

	t.Run("KindConflictsSkipped", func(t *testing.T) {
		doc := parseLines(
			"shared=1",
			"[shared]",
			"k=2",
			"[other]",
			"k=3",
			"[]",
			"other=4",
		)
		assert.Equal(t, KindValue, doc.Get("shared").Kind())
		assert.Equal(t, 1, doc.Get("shared").Int(0))
		assert.True(t, doc.Get("other").IsSection())
		assert.Equal(t, 3, doc.Get("other").MustKey("k").Int(0))
		assert.Equal(t, 2, doc.Count())
	})

	t.Run("EmptyInput", func(t *testing.T) {
		assert.True(t, parseLines().Empty())
	})
}

func TestLoad(t *testing.T) {
	t.Run("CRLF", func(t *testing.T) {
		doc, err := LoadString("a=1\r\n[s]\r\nb=\"x\"\r\n")
		require.NoError(t, err)
		assert.Equal(t, "1", doc.Get("a").Raw())
		assert.Equal(t, "x", doc.Get("s").MustKey("b").Text(""))
	})

	t.Run("NoTrailingNewline", func(t *testing.T) {
		doc, err := LoadString("a=1\nb=2")
		require.NoError(t, err)
		assert.Equal(t, 2, doc.Get("b").Int(0))
	})

	t.Run("LineTooLong", func(t *testing.T) {
		_, err := LoadString("a=" + strings.Repeat("x", MaxLineSize+1))
		assert.Error(t, err)
	})
}
