package signature

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Lexer splits a generic signature into tokens on demand. The same
// character can start different tokens depending on what precedes it, so
// the lexer remembers the previous token kind and the angle bracket depth.
// A ')' as previous token marks the return type position.
//
// A Lexer is not safe for concurrent use.
type Lexer struct {
	input string
	pos   int
	prev  TokenKind
	depth int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input, prev: TokenEOF}
}

// Depth reports the current angle bracket nesting.
func (l *Lexer) Depth() int {
	return l.depth
}

func (l *Lexer) peekAt(i int) byte {
	if i >= len(l.input) {
		return 0
	}
	return l.input[i]
}

func (l *Lexer) NextToken() Token {
	tok := l.scan()
	l.prev = tok.Kind
	return tok
}

func (l *Lexer) emit(kind TokenKind, text string, end int) Token {
	tok := Token{Kind: kind, Text: text, Offset: l.pos, End: end}
	l.pos = end
	return tok
}

func (l *Lexer) scan() Token {
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Offset: len(l.input), End: len(l.input)}
	}

	ch := l.input[l.pos]
	switch ch {
	case '*':
		return l.emit(TokenStar, "*", l.pos+1)
	case '+':
		return l.emit(TokenPlus, "+", l.pos+1)
	case '-':
		return l.emit(TokenMinus, "-", l.pos+1)
	case '[':
		return l.emit(TokenLBracket, "[", l.pos+1)
	case ':':
		return l.emit(TokenColon, ":", l.pos+1)
	case '.':
		return l.emit(TokenDot, ".", l.pos+1)
	case '^':
		return l.emit(TokenCaret, "^", l.pos+1)
	case ';':
		return l.emit(TokenSemicolon, ";", l.pos+1)
	case '<':
		l.depth++
		return l.emit(TokenLAngle, "<", l.pos+1)
	case '>':
		l.depth--
		return l.emit(TokenRAngle, ">", l.pos+1)
	case '(':
		return l.emit(TokenLParen, "(", l.pos+1)
	case ')':
		return l.emit(TokenRParen, ")", l.pos+1)
	case '$':
		if l.prev == TokenRAngle {
			return l.emit(TokenDollar, "$", l.pos+1)
		}
	}

	if l.inIdentifierPosition() {
		return l.scanIdentifier()
	}

	// A name directly followed by ':' only occurs as a formal type
	// parameter, so this check wins over the type code letters.
	if text, n := scanIdent(l.input, l.pos); n > 0 && l.peekAt(l.pos+n) == ':' {
		if l.peekAt(l.pos+n+1) == ':' {
			return l.emit(TokenIdentColon, text, l.pos+n+2)
		}
		return l.emit(TokenIdent, text, l.pos+n)
	}

	switch {
	case isBaseTypeCode(ch):
		next := l.peekAt(l.pos + 1)
		if l.depth == 0 && (next == 0 || next == '^') {
			return l.emit(TokenReturnBaseType, string(ch), l.pos+1)
		}
		return l.emit(TokenBaseType, string(ch), l.pos+1)
	case ch == 'V':
		if l.depth == 0 && l.prev == TokenRParen {
			return l.emit(TokenVoid, "V", l.pos+1)
		}
	case ch == 'T':
		if text, n := scanIdent(l.input, l.pos+1); n > 0 && l.peekAt(l.pos+1+n) == ';' {
			return l.emit(TokenTypeVariable, text, l.pos+n+2)
		}
	case ch == 'L':
		if pkg, end := l.packageSpecifier(); end > 0 {
			return l.emit(TokenPackageSpecifier, pkg, end)
		}
		if _, n := scanIdent(l.input, l.pos+1); n > 0 {
			return l.emit(TokenClassStart, "L", l.pos+1)
		}
	}

	return l.scanIdentifier()
}

// inIdentifierPosition reports whether the next run is part of a class
// name: after "L", a package prefix, or an inner class separator the type
// code letters lose their meaning.
func (l *Lexer) inIdentifierPosition() bool {
	switch l.prev {
	case TokenPackageSpecifier, TokenClassStart, TokenDot, TokenDollar:
		return true
	}
	return false
}

func (l *Lexer) scanIdentifier() Token {
	text, n := scanIdent(l.input, l.pos)
	if n == 0 {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		return l.emit(TokenError, string(r), l.pos+size)
	}
	return l.emit(TokenIdent, text, l.pos+n)
}

// packageSpecifier returns the decoded package prefix starting after the
// current 'L', segments joined by '/', and the offset just past its last
// '/'. The offset is 0 when there is no prefix.
func (l *Lexer) packageSpecifier() (string, int) {
	i := l.pos + 1
	end := 0
	var sb strings.Builder
	for {
		text, n := scanIdent(l.input, i)
		if n == 0 || l.peekAt(i+n) != '/' {
			return sb.String(), end
		}
		sb.WriteString(text)
		sb.WriteByte('/')
		i += n + 1
		end = i
	}
}

// scanIdent matches the longest identifier starting at start and returns
// its decoded text and the number of bytes consumed. Characters outside
// the identifier class can be written as \uXXXX.
func scanIdent(input string, start int) (string, int) {
	i := start
	var sb strings.Builder
	for i < len(input) {
		ch := input[i]
		if ch == '\\' {
			r, ok := decodeEscape(input, i)
			if !ok {
				break
			}
			sb.WriteRune(r)
			i += 6
			continue
		}
		if ch < utf8.RuneSelf {
			if !isIdentByte(ch) {
				break
			}
			sb.WriteByte(ch)
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(input[i:])
		if !isIdentRune(r) {
			break
		}
		sb.WriteRune(r)
		i += size
	}
	return sb.String(), i - start
}

func isIdentByte(ch byte) bool {
	return ch >= 'a' && ch <= 'z' ||
		ch >= 'A' && ch <= 'Z' ||
		ch >= '0' && ch <= '9' ||
		ch == '_' || ch == '$'
}

func isIdentRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isIdentByte(byte(r))
	}
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Sc, r))
}

// escapeIdent undoes the decoding of scanIdent: characters outside the
// identifier class are written as \uXXXX.
func escapeIdent(s string) string {
	plain := true
	for _, r := range s {
		if !isIdentRune(r) {
			plain = false
			break
		}
	}
	if plain {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if isIdentRune(r) {
			sb.WriteRune(r)
			continue
		}
		for _, u := range utf16.Encode([]rune{r}) {
			fmt.Fprintf(&sb, `\u%04x`, u)
		}
	}
	return sb.String()
}

func decodeEscape(input string, i int) (rune, bool) {
	if i+6 > len(input) || input[i+1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(input[i+2:i+6], 16, 16)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}
