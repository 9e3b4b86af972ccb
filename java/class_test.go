package java

import (
	"testing"

	"github.com/dhamidi/jsig/classfile"
	"github.com/dhamidi/jsig/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassNames(t *testing.T) {
	jdk := newJDK(t)
	entry, err := jdk.LoadClass("java.util.Map$Entry")
	require.NoError(t, err)
	assert.Equal(t, "Entry", entry.SimpleName())
	assert.Equal(t, "java.util", entry.Package())
	assert.True(t, entry.IsInterface())

	outer, err := entry.DeclaringClass()
	require.NoError(t, err)
	assert.Equal(t, "java.util.Map", outer.Name())

	object, err := jdk.LoadClass("java.lang.Object")
	require.NoError(t, err)
	assert.Equal(t, "Object", object.SimpleName())
	super, err := object.Superclass()
	require.NoError(t, err)
	assert.Nil(t, super)
}

func TestClassGenericSupertypes(t *testing.T) {
	jdk := newJDK(t)
	define(t, jdk, classfile.NewBuilder("p/Base", "java/lang/Object", publicClass|classfile.AccAbstract).
		Signature("<T:Ljava/lang/Object;>Ljava/lang/Object;"))
	names := define(t, jdk, classfile.NewBuilder("p/Names", "p/Base", publicClass).
		Interface("java/util/List").
		Interface("java/lang/Comparable").
		Signature("<X:Ljava/lang/Object;>Lp/Base<TX;>;Ljava/util/List<Ljava/lang/String;>;Ljava/lang/Comparable<Lp/Names<TX;>;>;"))
	plain := define(t, jdk, classfile.NewBuilder("p/Plain", "p/Base", publicClass).
		Interface("java/util/List"))

	super, err := names.GenericSuperclass()
	require.NoError(t, err)
	assert.Equal(t, "p.Base<X>", super.TypeName())
	params, err := names.TypeParameters()
	require.NoError(t, err)
	assert.Same(t, params[0], super.(*ParameterizedType).ActualTypeArguments()[0])

	ifaces, err := names.GenericInterfaces()
	require.NoError(t, err)
	require.Len(t, ifaces, 2)
	assert.Equal(t, "java.util.List<java.lang.String>", ifaces[0].TypeName())
	assert.Equal(t, "java.lang.Comparable<p.Names<X>>", ifaces[1].TypeName())

	erased, err := names.Superclass()
	require.NoError(t, err)
	assert.Equal(t, "p.Base", erased.Name())

	super, err = plain.GenericSuperclass()
	require.NoError(t, err)
	assert.Equal(t, "p.Base", className(t, super))
	ifaces, err = plain.GenericInterfaces()
	require.NoError(t, err)
	require.Len(t, ifaces, 1)
	assert.Equal(t, "java.util.List", className(t, ifaces[0]))
	params, err = plain.TypeParameters()
	require.NoError(t, err)
	assert.Empty(t, params)

	list, err := jdk.LoadClass("java.util.List")
	require.NoError(t, err)
	super, err = list.GenericSuperclass()
	require.NoError(t, err)
	assert.Nil(t, super, "interfaces have no superclass")
}

func TestMethodTypes(t *testing.T) {
	jdk := newJDK(t)
	c := define(t, jdk, classfile.NewBuilder("p/Service", "java/lang/Object", publicClass).
		Method(classfile.AccPublic|classfile.AccStatic, "plain", "(I[Ljava/lang/String;)V", "").
		Method(classfile.AccPublic, "sort", "(Ljava/util/List;)Ljava/lang/Comparable;",
			"<T::Ljava/lang/Comparable<-TT;>;>(Ljava/util/List<TT;>;)TT;").
		Method(classfile.AccPublic, "broken", "(Ljava/util/List;)V", "(Ljava/util/List<)V").
		Method(classfile.AccPublic, "io", "()V", "", "java/io/IOException").
		Method(classfile.AccPublic, "rethrow", "()V", "<E:Ljava/lang/Exception;>()V^TE;", "java/lang/Exception").
		Method(classfile.AccPublic, "<init>", "(Ljava/util/List;)V", "(Ljava/util/List<Ljava/lang/String;>;)V", "java/io/IOException").
		Method(classfile.AccStatic, "<clinit>", "()V", ""))

	t.Run("descriptor only", func(t *testing.T) {
		m := c.Method("plain")
		assert.False(t, m.HasSignature())
		assert.True(t, m.IsStatic())
		params, err := m.GenericParameterTypes()
		require.NoError(t, err)
		require.Len(t, params, 2)
		assert.Same(t, Primitive("int"), params[0])
		assert.Equal(t, "java.lang.String[]", params[1].TypeName())
		ret, err := m.GenericReturnType()
		require.NoError(t, err)
		assert.Same(t, Primitive("void"), ret)
		vars, err := m.TypeParameters()
		require.NoError(t, err)
		assert.Empty(t, vars)
	})

	t.Run("generic", func(t *testing.T) {
		m := c.Method("sort")
		vars, err := m.TypeParameters()
		require.NoError(t, err)
		require.Len(t, vars, 1)
		bounds, err := vars[0].Bounds()
		require.NoError(t, err)
		assert.Equal(t, "java.lang.Comparable<? super T>", bounds[0].TypeName())

		params, err := m.GenericParameterTypes()
		require.NoError(t, err)
		assert.Equal(t, "java.util.List<T>", params[0].TypeName())
		ret, err := m.GenericReturnType()
		require.NoError(t, err)
		assert.Same(t, vars[0], ret)

		erased, err := m.ParameterTypes()
		require.NoError(t, err)
		assert.Equal(t, "java.util.List", className(t, erased[0]))
		erasedRet, err := m.ReturnType()
		require.NoError(t, err)
		assert.Equal(t, "java.lang.Comparable", className(t, erasedRet))
	})

	t.Run("malformed signature keeps erasure", func(t *testing.T) {
		m := c.Method("broken")
		_, err := m.GenericParameterTypes()
		assert.ErrorIs(t, err, signature.ErrMalformedSignature)
		_, err = m.Declaration()
		assert.ErrorIs(t, err, signature.ErrMalformedSignature)

		erased, err := m.ParameterTypes()
		require.NoError(t, err)
		assert.Equal(t, "java.util.List", className(t, erased[0]))
	})

	t.Run("exceptions", func(t *testing.T) {
		thrown, err := c.Method("io").GenericExceptionTypes()
		require.NoError(t, err)
		require.Len(t, thrown, 1)
		assert.Equal(t, "java.io.IOException", className(t, thrown[0]))

		thrown, err = c.Method("rethrow").GenericExceptionTypes()
		require.NoError(t, err)
		require.Len(t, thrown, 1)
		tv, ok := thrown[0].(*TypeVariable)
		require.True(t, ok)
		assert.Equal(t, "E", tv.Name())

		classes, err := c.Method("rethrow").ExceptionTypes()
		require.NoError(t, err)
		assert.Equal(t, "java.lang.Exception", classes[0].Name())
	})

	t.Run("constructor", func(t *testing.T) {
		require.Len(t, c.Constructors(), 1, "static initializers are not constructors")
		ctor := c.Constructor("(Ljava/util/List;)V")
		require.NotNil(t, ctor)
		params, err := ctor.GenericParameterTypes()
		require.NoError(t, err)
		assert.Equal(t, "java.util.List<java.lang.String>", params[0].TypeName())
		thrown, err := ctor.GenericExceptionTypes()
		require.NoError(t, err)
		assert.Equal(t, "java.io.IOException", className(t, thrown[0]))
	})

	assert.Nil(t, c.Method("<clinit>"))
	assert.Len(t, c.MethodsByName("sort"), 1)
	assert.NotNil(t, c.MethodByDescriptor("io", "()V"))
	assert.Nil(t, c.MethodByDescriptor("io", "(I)V"))
}

func TestClassModelOf(t *testing.T) {
	jdk := newJDK(t)
	c := define(t, jdk, classfile.NewBuilder("p/Cache", "java/lang/Object", publicClass).
		Interface("java/util/Map").
		Signature("<K::Ljava/lang/Comparable<TK;>;V:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/Map<TK;TV;>;").
		Field(classfile.AccPrivate, "entries", "Ljava/util/List;", "Ljava/util/List<Ljava/util/Map$Entry<TK;TV;>;>;").
		Field(classfile.AccPrivate|classfile.AccStatic, "size", "I", "").
		Field(classfile.AccPrivate|classfile.AccSynthetic, "this$0", "Ljava/lang/Object;", "").
		Method(classfile.AccPublic, "<init>", "()V", "", "java/io/IOException").
		Method(classfile.AccPublic, "get", "(Ljava/lang/Comparable;)Ljava/lang/Object;", "(TK;)TV;").
		Method(classfile.AccPublic, "bad", "()V", "<>()V").
		Method(classfile.AccPublic|classfile.AccBridge|classfile.AccSynthetic, "get", "(Ljava/lang/Object;)Ljava/lang/Object;", ""))

	model := ClassModelOf(c)
	assert.Equal(t, "p.Cache", model.Name)
	assert.Equal(t, ClassKindClass, model.Kind)
	assert.Equal(t, []string{"K extends java.lang.Comparable<K>", "V"}, model.TypeParameters)
	assert.Equal(t, "java.lang.Object", model.SuperClass)
	assert.Equal(t, []string{"java.util.Map<K, V>"}, model.Interfaces)

	require.Len(t, model.Fields, 2)
	assert.Equal(t, "java.util.List<java.util.Map.Entry<K, V>>", model.Fields[0].Type)
	assert.Equal(t, "int", model.Fields[1].Type)
	assert.True(t, model.Fields[1].Static)

	require.Len(t, model.Constructors, 1)
	assert.Equal(t, []string{"java.io.IOException"}, model.Constructors[0].Throws)

	require.Len(t, model.Methods, 2)
	assert.Equal(t, "V", model.Methods[0].Type)
	assert.Equal(t, []string{"K"}, model.Methods[0].Parameters)
	assert.Equal(t, "bad", model.Methods[1].Name)
	assert.NotEmpty(t, model.Methods[1].Error)

	list, err := jdk.LoadClass("java.util.List")
	require.NoError(t, err)
	ifaceModel := ClassModelOf(list)
	assert.Equal(t, ClassKindInterface, ifaceModel.Kind)
	assert.Empty(t, ifaceModel.SuperClass)
	assert.Equal(t, []string{"E"}, ifaceModel.TypeParameters)
}

func TestResolvedString(t *testing.T) {
	jdk := newJDK(t)
	c := define(t, jdk, classfile.NewBuilder("p/Node", "java/lang/Object", publicClass).
		Signature("<T::Ljava/lang/Comparable<TT;>;U:Ljava/lang/Object;>Ljava/lang/Object;"))
	params, err := c.TypeParameters()
	require.NoError(t, err)
	assert.Equal(t, "T extends java.lang.Comparable<T>", ResolvedString(params[0]))
	assert.Equal(t, "U", ResolvedString(params[1]))
	assert.Equal(t, "int", ResolvedString(Primitive("int")))
}
