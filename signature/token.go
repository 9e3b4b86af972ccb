package signature

import "fmt"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Punctuation
	TokenStar
	TokenPlus
	TokenMinus
	TokenLBracket
	TokenColon
	TokenDot
	TokenDollar
	TokenLAngle
	TokenRAngle
	TokenCaret
	TokenSemicolon
	TokenLParen
	TokenRParen

	// Runs
	TokenTypeVariable
	TokenPackageSpecifier
	TokenClassStart
	TokenIdent
	TokenIdentColon

	// Type codes
	TokenBaseType
	TokenReturnBaseType
	TokenVoid
)

var tokenNames = [...]string{
	TokenEOF:              "EOF",
	TokenError:            "Error",
	TokenStar:             "'*'",
	TokenPlus:             "'+'",
	TokenMinus:            "'-'",
	TokenLBracket:         "'['",
	TokenColon:            "':'",
	TokenDot:              "'.'",
	TokenDollar:           "'$'",
	TokenLAngle:           "'<'",
	TokenRAngle:           "'>'",
	TokenCaret:            "'^'",
	TokenSemicolon:        "';'",
	TokenLParen:           "'('",
	TokenRParen:           "')'",
	TokenTypeVariable:     "TypeVariable",
	TokenPackageSpecifier: "PackageSpecifier",
	TokenClassStart:       "'L'",
	TokenIdent:            "Ident",
	TokenIdentColon:       "IdentColon",
	TokenBaseType:         "BaseType",
	TokenReturnBaseType:   "ReturnBaseType",
	TokenVoid:             "'V'",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is a single lexeme of a signature. Offset and End delimit the
// consumed input, which may be wider than Text: a type variable token
// covers "TName;" but carries only "Name".
type Token struct {
	Kind   TokenKind
	Text   string
	Offset int
	End    int
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of signature"
	case TokenTypeVariable, TokenPackageSpecifier, TokenIdent, TokenIdentColon,
		TokenBaseType, TokenReturnBaseType, TokenError:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
	return t.Kind.String()
}

func isBaseTypeCode(ch byte) bool {
	switch ch {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return true
	}
	return false
}

// PrimitiveName maps a base type code (including 'V') to its Java name.
func PrimitiveName(code byte) string {
	switch code {
	case 'B':
		return "byte"
	case 'C':
		return "char"
	case 'D':
		return "double"
	case 'F':
		return "float"
	case 'I':
		return "int"
	case 'J':
		return "long"
	case 'S':
		return "short"
	case 'Z':
		return "boolean"
	case 'V':
		return "void"
	}
	return ""
}

// PrimitiveCode is the inverse of PrimitiveName. It returns 0 for
// reference type names.
func PrimitiveCode(name string) byte {
	switch name {
	case "byte":
		return 'B'
	case "char":
		return 'C'
	case "double":
		return 'D'
	case "float":
		return 'F'
	case "int":
		return 'I'
	case "long":
		return 'J'
	case "short":
		return 'S'
	case "boolean":
		return 'Z'
	case "void":
		return 'V'
	}
	return 0
}
