package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputPrefersEvalExpression(t *testing.T) {
	input, filename, err := readInput("1 + 1", []string{"ignored.js"})
	require.NoError(t, err)
	assert.Equal(t, "1 + 1", input)
	assert.Equal(t, "<eval>", filename)
}

func TestReadInputReadsFileArgument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.js")
	require.NoError(t, os.WriteFile(path, []byte("let x = 1;"), 0o644))

	input, filename, err := readInput("", []string{path})
	require.NoError(t, err)
	assert.Equal(t, "let x = 1;", input)
	assert.Equal(t, path, filename)
}

func TestReadInputRequiresEvalOrFile(t *testing.T) {
	_, _, err := readInput("", nil)
	assert.Error(t, err)
}

func TestReadInputReportsMissingFile(t *testing.T) {
	_, _, err := readInput("", []string{filepath.Join(t.TempDir(), "missing.js")})
	assert.Error(t, err)
}
