package linprog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResultFile(t *testing.T) {
	dir := t.TempDir()

	res, err := Solve(wyndor(), AlgPrimal, DefaultConfig())
	require.NoError(t, err)

	path, err := WriteResultFile(dir, AlgPrimal.String(), res)
	require.NoError(t, err)

	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "PrimalSimplex_Result_"))
	assert.True(t, strings.HasSuffix(base, ".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Status: Optimal")
	assert.Contains(t, text, "Z = 36.000000")
	assert.Contains(t, text, "X1")
	assert.Contains(t, text, "Steps:")

	// variables come out sorted by label
	assert.Less(t, strings.Index(text, "X1"), strings.Index(text, "X2"))
}

func TestWriteResultFileBadDir(t *testing.T) {
	res := &Result{Trace: NewTrace()}
	_, err := WriteResultFile("/nonexistent-dir-for-sure", "PrimalSimplex", res)
	assert.Error(t, err)
}

func TestSensitivityLogAppend(t *testing.T) {
	dir := t.TempDir()
	log := NewSensitivityLog(dir)

	require.NoError(t, log.Append("first entry"))
	require.NoError(t, log.Append("second entry"))

	data, err := os.ReadFile(log.Path())
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "first entry")
	assert.Contains(t, text, "second entry")
	assert.Equal(t, 2, strings.Count(text, logDelim))
}
