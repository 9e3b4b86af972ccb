package java

import (
	"sync"
	"testing"

	"github.com/dhamidi/jsig/classfile"
	"github.com/dhamidi/jsig/signature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryFirstRegistrationWins(t *testing.T) {
	jdk := newJDK(t)
	a := define(t, jdk, classfile.NewBuilder("p/A", "java/lang/Object", publicClass))
	b := define(t, jdk, classfile.NewBuilder("p/B", "java/lang/Object", publicClass))
	list, err := jdk.LoadClass("java.util.List")
	require.NoError(t, err)

	node := &signature.ParameterizedType{
		RawType:       &signature.ClassType{Name: "java.util.List"},
		TypeArguments: []signature.GenericType{&signature.ClassType{Name: "java.lang.String"}},
		Signature:     "Ljava/util/List<Ljava/lang/String;>",
	}
	repo := NewRepository()

	_, ok := repo.FindParameterizedType(node, a)
	assert.False(t, ok)

	first := &ParameterizedType{raw: list}
	second := &ParameterizedType{raw: list}
	assert.Same(t, first, repo.RegisterParameterizedType(first, node, a))
	assert.Same(t, first, repo.RegisterParameterizedType(second, node, a))

	found, ok := repo.FindParameterizedType(node, a)
	require.True(t, ok)
	assert.Same(t, first, found)

	_, ok = repo.FindParameterizedType(node, b)
	assert.False(t, ok, "contexts must not share entries")

	tv := &TypeVariable{name: "T", decl: a}
	assert.Same(t, tv, repo.RegisterTypeVariable(tv, "T", a))
	assert.Same(t, tv, repo.RegisterTypeVariable(&TypeVariable{name: "T", decl: a}, "T", a))
	_, ok = repo.FindTypeVariable("T", b)
	assert.False(t, ok)

	types, vars := repo.Len()
	assert.Equal(t, 1, types)
	assert.Equal(t, 1, vars)
}

func TestRepositoryIdempotentAcrossSignatures(t *testing.T) {
	jdk := newJDK(t)
	util := define(t, jdk, classfile.NewBuilder("p/Util", "java/lang/Object", publicClass).
		Field(classfile.AccPublic, "names", "Ljava/util/List;", "Ljava/util/List<Ljava/lang/String;>;").
		Method(classfile.AccPublic, "accept", "(Ljava/util/List;)V", "(Ljava/util/List<Ljava/lang/String;>;)V").
		Method(classfile.AccPublic, "produce", "()Ljava/util/List;", "()Ljava/util/List<Ljava/lang/String;>;").
		Method(classfile.AccPublic, "generic", "(Ljava/util/List;)Ljava/lang/Object;", "<T:Ljava/lang/Object;>(Ljava/util/List<Ljava/lang/String;>;)TT;"))

	params, err := util.Method("accept").GenericParameterTypes()
	require.NoError(t, err)
	ret, err := util.Method("produce").GenericReturnType()
	require.NoError(t, err)
	field, err := util.Field("names").GenericType()
	require.NoError(t, err)

	assert.Same(t, params[0], ret)
	assert.Same(t, params[0], field)
	assert.Equal(t, "java.util.List<java.lang.String>", ret.TypeName())

	own, err := util.Method("generic").GenericParameterTypes()
	require.NoError(t, err)
	assert.NotSame(t, params[0], own[0], "a generic method is its own context")
	again, err := util.Method("generic").GenericParameterTypes()
	require.NoError(t, err)
	assert.Same(t, own[0], again[0])
}

func TestRepositoryConcurrentResolution(t *testing.T) {
	jdk := newJDK(t)
	util := define(t, jdk, classfile.NewBuilder("p/Util", "java/lang/Object", publicClass).
		Method(classfile.AccPublic, "accept", "(Ljava/util/Map;)V",
			"(Ljava/util/Map<Ljava/lang/String;Ljava/util/List<Ljava/lang/String;>;>;)V"))
	method := util.Method("accept")

	const workers = 16
	results := make([]Type, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			types, err := method.GenericParameterTypes()
			errs[i] = err
			if err == nil {
				results[i] = types[0]
			}
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}
}
