package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenSpec struct {
	kind TokenKind
	text string
}

func lexAll(input string) []tokenSpec {
	l := NewLexer(input)
	var toks []tokenSpec
	for {
		tok := l.NextToken()
		if tok.Kind == TokenEOF {
			return toks
		}
		toks = append(toks, tokenSpec{tok.Kind, tok.Text})
		if tok.Kind == TokenError {
			return toks
		}
	}
}

func TestLexerSequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tokenSpec
	}{
		{
			name:  "simple method",
			input: "(Ljava/lang/String;I)V",
			want: []tokenSpec{
				{TokenLParen, "("},
				{TokenPackageSpecifier, "java/lang/"},
				{TokenIdent, "String"},
				{TokenSemicolon, ";"},
				{TokenBaseType, "I"},
				{TokenRParen, ")"},
				{TokenVoid, "V"},
			},
		},
		{
			name:  "formal type parameter",
			input: "<T:Ljava/lang/Object;>",
			want: []tokenSpec{
				{TokenLAngle, "<"},
				{TokenIdent, "T"},
				{TokenColon, ":"},
				{TokenPackageSpecifier, "java/lang/"},
				{TokenIdent, "Object"},
				{TokenSemicolon, ";"},
				{TokenRAngle, ">"},
			},
		},
		{
			name:  "empty class bound",
			input: "<E::Ljava/lang/Runnable;>",
			want: []tokenSpec{
				{TokenLAngle, "<"},
				{TokenIdentColon, "E"},
				{TokenPackageSpecifier, "java/lang/"},
				{TokenIdent, "Runnable"},
				{TokenSemicolon, ";"},
				{TokenRAngle, ">"},
			},
		},
		{
			name:  "type variable argument",
			input: "Ljava/util/List<TT;>;",
			want: []tokenSpec{
				{TokenPackageSpecifier, "java/util/"},
				{TokenIdent, "List"},
				{TokenLAngle, "<"},
				{TokenTypeVariable, "T"},
				{TokenRAngle, ">"},
				{TokenSemicolon, ";"},
			},
		},
		{
			name:  "class in default package",
			input: "LItem;",
			want: []tokenSpec{
				{TokenClassStart, "L"},
				{TokenIdent, "Item"},
				{TokenSemicolon, ";"},
			},
		},
		{
			name:  "T after package is a class name",
			input: "Lcom/example/TreeNode;",
			want: []tokenSpec{
				{TokenPackageSpecifier, "com/example/"},
				{TokenIdent, "TreeNode"},
				{TokenSemicolon, ";"},
			},
		},
		{
			name:  "T after dot is a class name",
			input: "LOuter<TT;>.TInner;",
			want: []tokenSpec{
				{TokenClassStart, "L"},
				{TokenIdent, "Outer"},
				{TokenLAngle, "<"},
				{TokenTypeVariable, "T"},
				{TokenRAngle, ">"},
				{TokenDot, "."},
				{TokenIdent, "TInner"},
				{TokenSemicolon, ";"},
			},
		},
		{
			name:  "dollar after closing bracket",
			input: "LOuter<TT;>$Inner;",
			want: []tokenSpec{
				{TokenClassStart, "L"},
				{TokenIdent, "Outer"},
				{TokenLAngle, "<"},
				{TokenTypeVariable, "T"},
				{TokenRAngle, ">"},
				{TokenDollar, "$"},
				{TokenIdent, "Inner"},
				{TokenSemicolon, ";"},
			},
		},
		{
			name:  "dollar inside a name",
			input: "Ljava/util/Map$Entry;",
			want: []tokenSpec{
				{TokenPackageSpecifier, "java/util/"},
				{TokenIdent, "Map$Entry"},
				{TokenSemicolon, ";"},
			},
		},
		{
			name:  "return base type before throws",
			input: "()J^TE;",
			want: []tokenSpec{
				{TokenLParen, "("},
				{TokenRParen, ")"},
				{TokenReturnBaseType, "J"},
				{TokenCaret, "^"},
				{TokenTypeVariable, "E"},
			},
		},
		{
			name:  "wildcards and arrays",
			input: "<*+[I-TT;>",
			want: []tokenSpec{
				{TokenLAngle, "<"},
				{TokenStar, "*"},
				{TokenPlus, "+"},
				{TokenLBracket, "["},
				{TokenBaseType, "I"},
				{TokenMinus, "-"},
				{TokenTypeVariable, "T"},
				{TokenRAngle, ">"},
			},
		},
		{
			name:  "escaped identifier character",
			input: `Lpkg/A\u002dB;`,
			want: []tokenSpec{
				{TokenPackageSpecifier, "pkg/"},
				{TokenIdent, "A-B"},
				{TokenSemicolon, ";"},
			},
		},
		{
			name:  "escaped package character",
			input: `Lp\u0071/A;`,
			want: []tokenSpec{
				{TokenPackageSpecifier, "pq/"},
				{TokenIdent, "A"},
				{TokenSemicolon, ";"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lexAll(tt.input))
		})
	}
}

func TestLexerBaseTypeLetters(t *testing.T) {
	t.Run("field signature of one letter", func(t *testing.T) {
		toks := lexAll("I")
		require.Len(t, toks, 1)
		assert.Equal(t, TokenReturnBaseType, toks[0].kind)
	})

	t.Run("letters inside a class name", func(t *testing.T) {
		toks := lexAll("Lcom/acme/ItemBox;")
		require.Len(t, toks, 3)
		assert.Equal(t, tokenSpec{TokenIdent, "ItemBox"}, toks[1])
	})

	t.Run("V outside return position", func(t *testing.T) {
		toks := lexAll("(V)V")
		require.Len(t, toks, 4)
		assert.Equal(t, TokenIdent, toks[1].kind)
		assert.Equal(t, TokenVoid, toks[3].kind)
	})

	t.Run("formal parameter named like a base type", func(t *testing.T) {
		toks := lexAll("<I:TJ;>")
		require.Len(t, toks, 5)
		assert.Equal(t, tokenSpec{TokenIdent, "I"}, toks[1])
		assert.Equal(t, tokenSpec{TokenTypeVariable, "J"}, toks[3])
	})
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		text  string
	}{
		{"@", "@"},
		{"L/x;", "/"},
		{"(I)V x", " "},
		{`L\u00zz;`, `\`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := lexAll(tt.input)
			require.NotEmpty(t, toks)
			last := toks[len(toks)-1]
			assert.Equal(t, TokenError, last.kind)
			assert.Equal(t, tt.text, last.text)
		})
	}
}

func TestLexerDepth(t *testing.T) {
	l := NewLexer("LA<LB<TT;>;>;")
	maxDepth := 0
	for tok := l.NextToken(); tok.Kind != TokenEOF; tok = l.NextToken() {
		maxDepth = max(maxDepth, l.Depth())
	}
	assert.Equal(t, 2, maxDepth)
	assert.Equal(t, 0, l.Depth())
}

func TestLexerOffsets(t *testing.T) {
	l := NewLexer("TKey;")
	tok := l.NextToken()
	assert.Equal(t, Token{Kind: TokenTypeVariable, Text: "Key", Offset: 0, End: 5}, tok)
	assert.Equal(t, TokenEOF, l.NextToken().Kind)
}
