package scan

import (
	"bytes"
	"context"
	"testing"

	"github.com/dhamidi/jsig/classfile"
	"github.com/dhamidi/jsig/internal/telemetry"
	"github.com/dhamidi/jsig/java"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const public = classfile.AccPublic | classfile.AccSuper

func newLoader(t *testing.T) *java.MemoryLoader {
	t.Helper()
	l := java.NewMemoryLoader(nil)
	l.Define(classfile.NewBuilder("java/lang/Object", "", classfile.AccPublic).Build())
	l.Define(classfile.NewBuilder("java/lang/String", "java/lang/Object", public|classfile.AccFinal).Build())
	l.Define(classfile.NewBuilder("java/util/List", "java/lang/Object", classfile.AccPublic|classfile.AccInterface|classfile.AccAbstract).
		Signature("<E:Ljava/lang/Object;>Ljava/lang/Object;").
		Build())

	l.Define(classfile.NewBuilder("p/Good", "java/lang/Object", public).
		Signature("<T::Ljava/lang/Comparable<TT;>;>Ljava/lang/Object;").
		Field(classfile.AccPublic, "items", "Ljava/util/List;", "Ljava/util/List<TT;>;").
		Method(classfile.AccPublic, "<init>", "()V", "").
		Method(classfile.AccPublic, "first", "()Ljava/lang/Object;", "()TT;").
		Build())
	l.Define(classfile.NewBuilder("p/Bad", "java/lang/Object", public).
		Field(classfile.AccPublic, "format", "Ljava/util/List;", "Ljava/util/List<").
		Field(classfile.AccPublic, "missing", "Lq/Gone;", "Lq/Gone<Ljava/lang/String;>;").
		Field(classfile.AccPublic, "count", "Ljava/util/List;", "Ljava/util/List<Ljava/lang/String;Ljava/lang/String;>;").
		Method(classfile.AccPublic, "lost", "()Ljava/lang/Object;", "()TX;").
		Build())
	return l
}

func TestScannerRun(t *testing.T) {
	loader := newLoader(t)
	// java.lang.Comparable is missing, so p.Good's bound fails to resolve.
	report, err := New(loader, 2).Run(context.Background(), []string{"p.Good", "p.Bad", "p.Nowhere"})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.Classes)
	assert.Equal(t, 7, report.Members)
	assert.Equal(t, 7, report.Signatures)

	want := []Failure{
		{Class: "p.Bad", Member: "count", Reason: ReasonMalformed},
		{Class: "p.Bad", Member: "format", Reason: ReasonFormat},
		{Class: "p.Bad", Member: "lost()Ljava/lang/Object;", Reason: ReasonNotPresent},
		{Class: "p.Bad", Member: "missing", Reason: ReasonNotPresent},
		{Class: "p.Good", Member: "", Reason: ReasonNotPresent},
		{Class: "p.Nowhere", Member: "", Reason: ReasonLoad},
	}
	require.Len(t, report.Failures, len(want))
	for i, w := range want {
		got := report.Failures[i]
		assert.Equal(t, w.Class, got.Class, i)
		assert.Equal(t, w.Member, got.Member, i)
		assert.Equal(t, w.Reason, got.Reason, "%s %s: %s", got.Class, got.Member, got.Error)
		assert.NotEmpty(t, got.Error)
	}
}

func TestScannerClean(t *testing.T) {
	loader := newLoader(t)
	loader.Define(classfile.NewBuilder("java/lang/Comparable", "java/lang/Object", classfile.AccPublic|classfile.AccInterface|classfile.AccAbstract).
		Signature("<T:Ljava/lang/Object;>Ljava/lang/Object;").
		Build())

	report, err := New(loader, 0).Run(context.Background(), []string{"p.Good", "java.util.List"})
	require.NoError(t, err)
	assert.Empty(t, report.Failures)
	assert.Equal(t, 3, report.Members)
}

func TestScannerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(newLoader(t), 1).Run(ctx, []string{"p.Good"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScannerSpans(t *testing.T) {
	var buf bytes.Buffer
	shutdown, err := telemetry.Init(context.Background(), &buf, "test")
	require.NoError(t, err)

	_, err = New(newLoader(t), 1).Run(context.Background(), []string{"p.Bad"})
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"scan.Run"`)
	assert.Contains(t, out, `"scan.Class"`)
	assert.Contains(t, out, `"p.Bad"`)
}
