package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(RepositoryLookups.WithLabelValues("variable", "hit"))
	RepositoryLookups.WithLabelValues("variable", "hit").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RepositoryLookups.WithLabelValues("variable", "hit")))
}

func TestWriteFile(t *testing.T) {
	SignaturesParsed.WithLabelValues("field", "ok").Inc()
	path := filepath.Join(t.TempDir(), "jsig.prom")

	require.NoError(t, WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "jsig_signature_parsed_total")
	assert.Contains(t, string(data), `kind="field"`)
}

func TestWriteFileError(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "dir", "jsig.prom"))
	assert.Error(t, err)
}
