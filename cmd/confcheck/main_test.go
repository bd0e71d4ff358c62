package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/confcheck"
	"github.com/aretw0/confcheck/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command against dir and returns the exit status and output.
func runCLI(t *testing.T, dir string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	full := append([]string{"--settings", filepath.Join(dir, ".confcheck.yaml")}, args...)
	code := run(cmd, full)
	return code, stdout.String(), stderr.String()
}

func writeDocs(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return dir
}

func TestValidate_Valid(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"app.conf":   "endpoint = localhost:3000\ndebug = true\n",
		"app.schema": "endpoint = string\ndebug = bool\n",
	})

	code, out, _ := runCLI(t, dir, "validate", "--dir", dir, "app.conf", "app.schema")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "OK")
}

func TestValidate_FindingsExitOne(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"app.conf":   "retry = abc\nextra = 1\n",
		"app.schema": "retry = integer\n",
	})

	code, out, _ := runCLI(t, dir, "validate", "--dir", dir, "--format", "json", "app.conf", "app.schema")
	assert.Equal(t, exitFindings, code)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.False(t, rep.Valid)
	require.Len(t, rep.Findings, 2)
	assert.Equal(t, "extra", rep.Findings[0].Key)
	assert.Equal(t, "retry", rep.Findings[1].Key)
}

func TestValidate_ParseErrorExitOne(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"app.conf":   "retry = 1\n",
		"app.schema": "retry = number\n",
	})

	code, out, errOut := runCLI(t, dir, "validate", "--dir", dir, "app.conf", "app.schema")
	assert.Equal(t, exitFindings, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "line 1: unknown type: number")
}

func TestValidate_MissingDocument(t *testing.T) {
	dir := writeDocs(t, map[string]string{"app.schema": "a = string\n"})

	code, _, errOut := runCLI(t, dir, "validate", "--dir", dir, "absent.conf", "app.schema")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "document not found")
}

func TestValidate_UsageErrors(t *testing.T) {
	dir := t.TempDir()

	code, _, _ := runCLI(t, dir, "validate", "only-one")
	assert.Equal(t, exitError, code)

	code, _, errOut := runCLI(t, dir, "validate", "--format", "xml", "a", "b")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "xml")

	code, _, _ = runCLI(t, dir, "validate", "--source", "etcd", "a", "b")
	assert.Equal(t, exitError, code)
}

func TestValidate_SettingsFile(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"docs/app.conf":   "a = 1\n",
		"docs/app.schema": "a = integer\n",
	})
	settingsYAML := "format: yaml\ndir: " + filepath.Join(dir, "docs") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".confcheck.yaml"), []byte(settingsYAML), 0644))

	code, out, _ := runCLI(t, dir, "validate", "app.conf", "app.schema")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "valid: true")
}

func TestValidate_RedisSource(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.Set("confcheck:doc:app.conf", "port = 80\n")
	mr.Set("confcheck:doc:app.schema", "port = integer\nhost = string\n")

	code, out, _ := runCLI(t, t.TempDir(), "validate", "--source", "redis", "--redis-addr", mr.Addr(), "app.conf", "app.schema")
	assert.Equal(t, exitFindings, code)
	assert.Contains(t, out, "host")
}

func TestGet(t *testing.T) {
	dir := writeDocs(t, map[string]string{
		"app.conf": "# comment\nlog.file = /var/log/app.log\n",
	})

	code, out, _ := runCLI(t, dir, "get", "--dir", dir, "app.conf", "log.file")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, "/var/log/app.log\n", out)

	code, _, errOut := runCLI(t, dir, "get", "--dir", dir, "app.conf", "absent")
	assert.Equal(t, exitFindings, code)
	assert.Contains(t, errOut, "absent")
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, t.TempDir(), "version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, confcheck.Version)
}
