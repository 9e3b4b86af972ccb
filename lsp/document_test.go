package lsp

import (
	"testing"

	"github.com/dhamidi/jsig/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const sample = `# collections
class <E:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/List<TE;>;
  field   Ljava/util/Map<TK;TV;>.Entry<TK;TV;>;

method <T:Ljava/lang/Object;>(Ljava/util/List<+TT;>;)TT;
method (Ljava/util/List<Ljava/lang/String;)V
constructor
record Ljava/lang/Object;
field Lé;Ljava/lang/String;
`

func TestAnalyze(t *testing.T) {
	doc := Analyze("a.jsig", []byte(sample))
	require.Len(t, doc.Entries, 7)

	lines := make([]int, len(doc.Entries))
	for i, e := range doc.Entries {
		lines[i] = e.Line
	}
	assert.Equal(t, []int{1, 2, 4, 5, 6, 7, 8}, lines)

	field := doc.Entries[1]
	require.NoError(t, field.Err)
	assert.Equal(t, signature.KindField, field.Kind)
	assert.Equal(t, 10, field.Column)
	assert.Equal(t, "Ljava/util/Map<TK;TV;>.Entry<TK;TV;>;", field.Signature)

	for _, i := range []int{3, 4, 5, 6} {
		assert.Error(t, doc.Entries[i].Err, doc.Entries[i].Text)
	}
	assert.ErrorIs(t, doc.Entries[3].Err, signature.ErrMalformedSignature)
	assert.ErrorIs(t, doc.Entries[4].Err, errMissingSignature)
}

func TestDiagnostics(t *testing.T) {
	doc := Analyze("a.jsig", []byte(sample))
	diagnostics := doc.Diagnostics()
	require.Len(t, diagnostics, 4)

	for _, d := range diagnostics {
		require.NotNil(t, d.Severity)
		assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
		assert.Equal(t, "jsig", *d.Source)
		assert.NotEmpty(t, d.Message)
	}

	malformed := doc.Entries[3]
	var format *signature.FormatError
	require.ErrorAs(t, malformed.Err, &format)
	assert.Equal(t, protocol.UInteger(5), diagnostics[0].Range.Start.Line)
	assert.Equal(t, protocol.UInteger(7+format.Offset), diagnostics[0].Range.Start.Character)

	missing := diagnostics[1].Range
	assert.Equal(t, protocol.Position{Line: 6, Character: 0}, missing.Start)
	assert.Equal(t, protocol.Position{Line: 6, Character: 11}, missing.End)

	kind := diagnostics[2].Range
	assert.Equal(t, protocol.Position{Line: 7, Character: 0}, kind.Start)
	assert.Equal(t, protocol.Position{Line: 7, Character: 6}, kind.End)
	assert.Contains(t, diagnostics[2].Message, "unknown signature kind")

	var last *signature.FormatError
	require.ErrorAs(t, doc.Entries[6].Err, &last)
	assert.LessOrEqual(t, diagnostics[3].Range.Start.Character, diagnostics[3].Range.End.Character)
}

func TestPositionCountsUTF16(t *testing.T) {
	text := "field L😀é;"
	pos := position(3, text, len(text))
	assert.Equal(t, protocol.UInteger(3), pos.Line)
	assert.Equal(t, protocol.UInteger(11), pos.Character)
}

func TestHover(t *testing.T) {
	doc := Analyze("a.jsig", []byte(sample))

	entry, ok := doc.EntryAt(4)
	require.True(t, ok)
	hover := entry.Hover()
	content, ok := hover.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Equal(t, protocol.MarkupKindMarkdown, content.Kind)
	assert.Contains(t, content.Value, "<T> T (java.util.List<? extends T>)")
	assert.Contains(t, content.Value, "method signature `<T:Ljava/lang/Object;>(Ljava/util/List<+TT;>;)TT;`")
	assert.Equal(t, protocol.UInteger(7), hover.Range.Start.Character)

	_, ok = doc.EntryAt(5)
	assert.False(t, ok, "no hover for malformed lines")
	_, ok = doc.EntryAt(0)
	assert.False(t, ok, "no hover for comments")
}
