package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/jsig/java"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleModel() *java.ClassModel {
	return &java.ClassModel{
		Name:           "p.Cache",
		SimpleName:     "Cache",
		Package:        "p",
		Kind:           java.ClassKindClass,
		Modifiers:      []string{"public", "final"},
		Signature:      "<K::Ljava/lang/Comparable<TK;>;V:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/Map<TK;TV;>;",
		TypeParameters: []string{"K extends java.lang.Comparable<K>", "V"},
		SuperClass:     "java.lang.Object",
		Interfaces:     []string{"java.util.Map<K, V>"},
		Fields: []java.MemberModel{
			{Name: "entries", Descriptor: "Ljava/util/List;", Type: "java.util.List<java.util.Map.Entry<K, V>>", Modifiers: []string{"private"}},
			{Name: "size", Descriptor: "I", Type: "int", Static: true, Modifiers: []string{"private", "static"}},
		},
		Constructors: []java.MemberModel{
			{Name: "<init>", Descriptor: "()V", Throws: []string{"java.io.IOException"}, Modifiers: []string{"public"}},
		},
		Methods: []java.MemberModel{
			{Name: "get", Descriptor: "(Ljava/lang/Comparable;)Ljava/lang/Object;", Type: "V", Parameters: []string{"K"}, Modifiers: []string{"public"}},
			{Name: "map", Descriptor: "(Ljava/util/List;)Ljava/util/List;", TypeParameters: []string{"T"}, Type: "java.util.List<T>",
				Parameters: []string{"java.util.List<? extends T>"}, Modifiers: []string{"public", "static"}, Static: true},
			{Name: "bad", Descriptor: "()V", Error: "bad signature"},
		},
	}
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(sampleModel()))

	want := "class\tp.Cache\tpublic,final\n" +
		"typeparam\tK extends java.lang.Comparable<K>\n" +
		"typeparam\tV\n" +
		"extends\tjava.lang.Object\n" +
		"implements\tjava.util.Map<K, V>\n" +
		"field\tentries\tjava.util.List<java.util.Map.Entry<K, V>>\tprivate\n" +
		"field\tsize\tint\tprivate,static\n" +
		"constructor\t-\t-\tjava.io.IOException\tpublic\n" +
		"method\tget\t-\tK\tV\t-\tpublic\n" +
		"method\tmap\t<T>\tjava.util.List<? extends T>\tjava.util.List<T>\t-\tpublic,static\n" +
		"method\tbad()V\terror\tbad signature\n"
	assert.Equal(t, want, buf.String())
}

func TestJavaEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJavaEncoder(&buf).Encode(sampleModel()))

	want := `package p;

public final class Cache<K extends java.lang.Comparable<K>, V> implements java.util.Map<K, V> {
    private java.util.List<java.util.Map.Entry<K, V>> entries;
    private static int size;
    public Cache() throws java.io.IOException;
    public V get(K);
    public static <T> java.util.List<T> map(java.util.List<? extends T>);
    // bad()V: bad signature
}
`
	assert.Equal(t, want, buf.String())
}

func TestJavaEncoderInterface(t *testing.T) {
	model := &java.ClassModel{
		Name:           "q.Source",
		SimpleName:     "Source",
		Kind:           java.ClassKindInterface,
		Modifiers:      []string{"public"},
		TypeParameters: []string{"T"},
		Interfaces:     []string{"java.lang.Iterable<T>"},
	}
	var buf bytes.Buffer
	require.NoError(t, NewJavaEncoder(&buf).Encode(model))
	assert.Equal(t, "public interface Source<T> extends java.lang.Iterable<T> {\n}\n", buf.String())
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(sampleModel()))

	var got java.ClassModel
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleModel(), got)
	assert.Contains(t, buf.String(), `"simpleName": "Cache"`)
	assert.NotContains(t, buf.String(), `"error": ""`)
}

func TestNew(t *testing.T) {
	for _, name := range []string{"line", "json", "java"} {
		enc, err := New(name, &bytes.Buffer{})
		require.NoError(t, err, name)
		assert.NotNil(t, enc)
	}
	_, err := New("yaml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")
}
