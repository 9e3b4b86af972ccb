package java

import (
	"testing"

	"github.com/dhamidi/jsig/classfile"
	"github.com/stretchr/testify/require"
)

const (
	publicClass     = classfile.AccPublic | classfile.AccSuper
	publicInterface = classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract
)

func iface(name, sig string) *classfile.Builder {
	return classfile.NewBuilder(name, "java/lang/Object", publicInterface).Signature(sig)
}

// newJDK defines the handful of platform classes the tests refer to.
func newJDK(t *testing.T) *MemoryLoader {
	t.Helper()
	l := NewMemoryLoader(nil)
	l.Define(classfile.NewBuilder("java/lang/Object", "", classfile.AccPublic).Build())
	l.Define(iface("java/lang/Comparable", "<T:Ljava/lang/Object;>Ljava/lang/Object;").Build())
	l.Define(classfile.NewBuilder("java/lang/String", "java/lang/Object", publicClass|classfile.AccFinal).
		Interface("java/lang/Comparable").
		Signature("Ljava/lang/Object;Ljava/lang/Comparable<Ljava/lang/String;>;").
		Build())
	l.Define(classfile.NewBuilder("java/lang/Exception", "java/lang/Object", publicClass).Build())
	l.Define(classfile.NewBuilder("java/io/IOException", "java/lang/Exception", publicClass).Build())
	l.Define(iface("java/util/List", "<E:Ljava/lang/Object;>Ljava/lang/Object;").Build())
	l.Define(iface("java/util/Map", "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;").Build())
	l.Define(iface("java/util/Map$Entry", "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;").
		Outer("java/util/Map", "Entry", publicInterface|classfile.AccStatic).
		Build())
	return l
}

func define(t *testing.T, l *MemoryLoader, b *classfile.Builder) *Class {
	t.Helper()
	data, err := b.Build().Bytes()
	require.NoError(t, err)
	c, err := l.DefineBytes(data)
	require.NoError(t, err)
	return c
}

func className(t *testing.T, typ Type) string {
	t.Helper()
	c, ok := typ.(*Class)
	require.True(t, ok, "expected *Class, got %T", typ)
	return c.Name()
}
