package signature_test

import (
	"testing"

	"github.com/dhamidi/jsig/grammar"
	"github.com/dhamidi/jsig/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The parser and the EBNF grammar must agree on which signatures are
// well formed.
func TestParserAgreesWithGrammar(t *testing.T) {
	g, err := grammar.Signatures()
	require.NoError(t, err)

	tests := []struct {
		kind signature.Kind
		sig  string
		ok   bool
	}{
		{signature.KindClass, "Ljava/lang/Object;", true},
		{signature.KindClass, "<T::Ljava/lang/Comparable<TT;>;>Ljava/lang/Object;Ljava/io/Serializable;", true},
		{signature.KindClass, "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/util/AbstractMap<TK;TV;>;", true},
		{signature.KindClass, "<>Ljava/lang/Object;", false},
		{signature.KindClass, "Ljava/lang/Object", false},
		{signature.KindField, "I", true},
		{signature.KindField, "[I", true},
		{signature.KindField, "[[TT;", true},
		{signature.KindField, "Ljava/util/Map$Entry<TK;TV;>;", true},
		{signature.KindField, "Ljava/util/Map<TK;+Ljava/util/List<*>;>;", true},
		{signature.KindField, "Lp/Outer<Ljava/lang/String;>.Inner<TT;>;", true},
		{signature.KindField, "Ljava/util/List<I>;", true},
		{signature.KindField, "Lp/\\u0041b;", true},
		{signature.KindField, "Ljava/util/List<>;", false},
		{signature.KindField, "Ljava/util/List<+I>;", false},
		{signature.KindField, "Ljava/util/List<", false},
		{signature.KindField, "TT", false},
		{signature.KindField, "V", false},
		{signature.KindField, "", false},
		{signature.KindMethod, "()V", true},
		{signature.KindMethod, "<T:>()V", true},
		{signature.KindMethod, "(I)I^TE;", true},
		{signature.KindMethod, "<T:Ljava/lang/Object;>(TT;[I)TT;^Ljava/io/IOException;^TE;", true},
		{signature.KindMethod, "()", false},
		{signature.KindMethod, "(I", false},
		{signature.KindMethod, "()V^", false},
		{signature.KindConstructor, "(TT;)V^TX;", true},
		{signature.KindConstructor, "<T:Ljava/lang/Object;>(TT;)V", true},
		{signature.KindConstructor, "(TT;)I", false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.sig, func(t *testing.T) {
			start, err := grammar.Production(tt.kind.String())
			require.NoError(t, err)

			_, parseErr := signature.Parse(tt.sig, tt.kind)
			matchErr := grammar.Recognize(g, start, tt.sig)
			if tt.ok {
				assert.NoError(t, parseErr)
				assert.NoError(t, matchErr)
			} else {
				assert.ErrorIs(t, parseErr, signature.ErrMalformedSignature)
				assert.Error(t, matchErr)
			}
		})
	}
}

// Parameterized throws entries are grammatical but rejected by the
// parser.
func TestParserRejectsParameterizedThrows(t *testing.T) {
	g, err := grammar.Signatures()
	require.NoError(t, err)

	sig := "()V^Ljava/util/List<TT;>;"
	assert.NoError(t, grammar.Recognize(g, "MethodSignature", sig))
	_, err = signature.ParseMethod(sig)
	assert.ErrorIs(t, err, signature.ErrMalformedSignature)
}
