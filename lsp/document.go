package lsp

import (
	"errors"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/jsig/signature"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Ext is the extension of signature documents. Each line holds a kind
// and a signature, e.g. "method <T:Ljava/lang/Object;>(TT;)V". Blank
// lines and lines starting with # are ignored.
const Ext = ".jsig"

var errMissingSignature = errors.New("missing signature")

// Entry is one analyzed line. Columns are byte offsets into Text.
type Entry struct {
	Line      int
	Text      string
	Kind      signature.Kind
	Signature string
	Column    int
	Decl      signature.Declaration
	Err       error

	errStart, errEnd int
}

type Document struct {
	Path    string
	Content []byte
	Entries []Entry
}

func Analyze(path string, content []byte) *Document {
	doc := &Document{Path: path, Content: content}
	for i, text := range strings.Split(string(content), "\n") {
		text = strings.TrimRight(text, " \t\r")
		body := strings.TrimLeft(text, " \t")
		if body == "" || strings.HasPrefix(body, "#") {
			continue
		}
		doc.Entries = append(doc.Entries, analyzeLine(i, text, len(text)-len(body)))
	}
	return doc
}

func analyzeLine(line int, text string, kindStart int) Entry {
	e := Entry{Line: line, Text: text}
	kindEnd := strings.IndexAny(text[kindStart:], " \t")
	if kindEnd < 0 {
		kindEnd = len(text)
	} else {
		kindEnd += kindStart
	}

	kind, err := signature.ParseKind(text[kindStart:kindEnd])
	if err != nil {
		e.Err, e.errStart, e.errEnd = err, kindStart, kindEnd
		return e
	}
	e.Kind = kind

	e.Column = kindEnd + len(text[kindEnd:]) - len(strings.TrimLeft(text[kindEnd:], " \t"))
	e.Signature = text[e.Column:]
	if e.Signature == "" {
		e.Err, e.errStart, e.errEnd = errMissingSignature, kindStart, kindEnd
		return e
	}

	e.Decl, e.Err = signature.Parse(e.Signature, kind)
	if e.Err == nil {
		return e
	}
	var format *signature.FormatError
	if errors.As(e.Err, &format) {
		e.errStart = e.Column + min(format.Offset, len(e.Signature))
		e.errEnd = e.errStart
		if e.errEnd < len(text) {
			_, size := utf8.DecodeRuneInString(text[e.errEnd:])
			e.errEnd += size
		}
		return e
	}
	e.errStart, e.errEnd = e.Column, len(text)
	return e
}

// Diagnostics reports every failing entry.
func (d *Document) Diagnostics() []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	severity := protocol.DiagnosticSeverityError
	source := lsName
	for _, e := range d.Entries {
		if e.Err == nil {
			continue
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: position(e.Line, e.Text, e.errStart),
				End:   position(e.Line, e.Text, e.errEnd),
			},
			Severity: &severity,
			Source:   &source,
			Message:  e.Err.Error(),
		})
	}
	return diagnostics
}

// EntryAt returns the parsed entry on line, if any.
func (d *Document) EntryAt(line int) (Entry, bool) {
	for _, e := range d.Entries {
		if e.Line == line {
			return e, e.Decl != nil
		}
	}
	return Entry{}, false
}

// Hover renders the entry as Java and as a canonical signature.
func (e Entry) Hover() *protocol.Hover {
	var sb strings.Builder
	sb.WriteString("```java\n")
	sb.WriteString(signature.Describe(e.Decl))
	sb.WriteString("\n```\n\n")
	sb.WriteString(e.Kind.String())
	sb.WriteString(" signature `")
	sb.WriteString(signature.PrintDeclaration(e.Decl))
	sb.WriteString("`")

	r := protocol.Range{
		Start: position(e.Line, e.Text, e.Column),
		End:   position(e.Line, e.Text, len(e.Text)),
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: sb.String()},
		Range:    &r,
	}
}

// position converts a byte column to the UTF-16 column LSP clients use.
func position(line int, text string, col int) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(len(utf16.Encode([]rune(text[:col])))),
	}
}
