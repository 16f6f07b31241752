package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/orixdb/orixdb"
	"github.com/orixdb/orixdb/internal/layout"
	"github.com/orixdb/orixdb/internal/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code           int
	stdout, stderr string
}

func runCLI(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(""), &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCreateAndInspect(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orders")

	res := runCLI(t, "create", dir, "--api-port", "9000...", "--checksum=false", "--log-level", "error")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Store created")
	assert.Contains(t, res.stdout, "orders")
	assert.Contains(t, res.stdout, "9000...")
	assert.Contains(t, res.stdout, "7979")

	m, err := manifest.Load(nil, filepath.Join(dir, layout.ManifestFile))
	require.NoError(t, err)
	assert.False(t, m.Checksumming)

	res = runCLI(t, "inspect", dir)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Store orders")
	assert.Contains(t, res.stdout, "singletons")
	assert.Contains(t, res.stdout, "collection items")

	// inspect releases the store lock on exit.
	st, err := orixdb.Open(t.Context(), dir, orixdb.WithLogger(orixdb.NoopLogger()))
	require.NoError(t, err)
	require.NoError(t, st.Close())
}

func TestCreateFailures(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x"), nil, 0o644))

	res := runCLI(t, "create", dir)
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error")

	res = runCLI(t, "create", filepath.Join(t.TempDir(), "s"), "--api-port", "abc")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "abc")
}

func TestInvalidLogLevel(t *testing.T) {
	res := runCLI(t, "create", filepath.Join(t.TempDir(), "s"), "--log-level", "loud")
	assert.Equal(t, 1, res.code)
}

func TestInspectMissingStore(t *testing.T) {
	res := runCLI(t, "inspect", filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, orixdb.ErrDirectoryNotFound.Error())
}

func TestInspectNewerStoreAssumeYes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orders")
	require.Equal(t, 0, runCLI(t, "create", dir).code)

	path := filepath.Join(dir, layout.ManifestFile)
	m, err := manifest.Load(nil, path)
	require.NoError(t, err)
	m.Version.Minor = orixdb.EngineVersion.Minor + 1
	require.NoError(t, manifest.Save(nil, path, m))

	t.Setenv("ORIXDB_PROMPT_ASSUME_YES", "true")
	res := runCLI(t, "inspect", dir)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Store orders")
	assert.Contains(t, res.stdout, "newer than engine "+orixdb.EngineVersion.String())
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 0, exitCode(nil, &stderr))
	assert.Empty(t, stderr.String())

	assert.Equal(t, 0, exitCode(fmt.Errorf("open: %w", orixdb.ErrDeclined), &stderr))
	assert.Contains(t, stderr.String(), "declined")

	stderr.Reset()
	assert.Equal(t, 1, exitCode(errors.New("boom"), &stderr))
	assert.Contains(t, stderr.String(), "boom")
}

func TestInspectNewerStoreNonInteractiveDeclines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orders")
	require.Equal(t, 0, runCLI(t, "create", dir).code)

	path := filepath.Join(dir, layout.ManifestFile)
	m, err := manifest.Load(nil, path)
	require.NoError(t, err)
	m.Version.Minor = orixdb.EngineVersion.Minor + 1
	require.NoError(t, manifest.Save(nil, path, m))

	res := runCLI(t, "inspect", dir)
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stderr, "assume_yes")
	assert.NotContains(t, res.stdout, "Store orders")
}
