package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
eventroute:
  enabled: true
  errorsEnabled: true
  environment: test
  events:
    user:
      LOGGED_IN: Logged In
      LOGGED_OUT: Logged Out
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCatalogCommand(t *testing.T) {
	path := writeConfig(t, testConfig)

	t.Run("table", func(t *testing.T) {
		out, _, err := execute(t, "catalog", "--config", path)
		require.NoError(t, err)
		assert.Contains(t, out, "TAG")
		assert.Contains(t, out, "LOGGED_IN")
		assert.Contains(t, out, "Logged Out")
		assert.Contains(t, out, "ERROR")
	})

	t.Run("json", func(t *testing.T) {
		out, _, err := execute(t, "catalog", "--config", path, "--json")
		require.NoError(t, err)

		var catalog map[string]map[string]string
		require.NoError(t, json.Unmarshal([]byte(out), &catalog))
		assert.Equal(t, "Logged In", catalog["user"]["LOGGED_IN"])
		assert.Equal(t, "Error", catalog["error"]["ERROR"])
	})

	t.Run("disabled", func(t *testing.T) {
		disabled := writeConfig(t, "eventroute:\n  enabled: false\n")
		out, errOut, err := execute(t, "catalog", "--config", disabled)
		require.NoError(t, err)
		assert.Empty(t, out)
		assert.Contains(t, errOut, "disabled")
	})

	t.Run("invalid config", func(t *testing.T) {
		invalid := writeConfig(t, "eventroute:\n  enabled: true\n")
		_, _, err := execute(t, "catalog", "--config", invalid)
		assert.Error(t, err)
	})
}

func TestEmitCommand(t *testing.T) {
	t.Run("by name", func(t *testing.T) {
		out, _, err := execute(t, "emit", "--tag", "user", "--name", "Logged In", "--meta", "method=sso")
		require.NoError(t, err)

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rec))
		assert.Equal(t, "Logged In", rec["message"])
		assert.Equal(t, "info", rec["level"])
		assert.Equal(t, map[string]any{"method": "sso"}, rec["metadata"])
		assert.Equal(t, "development", rec["application"].(map[string]any)["environment"])
	})

	t.Run("by catalog key", func(t *testing.T) {
		path := writeConfig(t, testConfig)
		out, _, err := execute(t, "emit", "-c", path, "--level", "warning", "--tag", "user", "--event", "LOGGED_OUT")
		require.NoError(t, err)
		assert.Contains(t, out, `"message":"Logged Out"`)
		assert.Contains(t, out, `"level":"warn"`)
	})

	t.Run("unknown catalog key", func(t *testing.T) {
		path := writeConfig(t, testConfig)
		_, _, err := execute(t, "emit", "-c", path, "--tag", "user", "--event", "MISSING")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown event")
	})

	t.Run("bad level", func(t *testing.T) {
		_, _, err := execute(t, "emit", "--tag", "user", "--name", "x", "--level", "debug")
		assert.Error(t, err)
	})

	t.Run("bad meta", func(t *testing.T) {
		_, _, err := execute(t, "emit", "--tag", "user", "--name", "x", "--meta", "novalue")
		assert.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		_, _, err := execute(t, "emit", "--tag", "user")
		assert.Error(t, err)
	})

	t.Run("missing tag", func(t *testing.T) {
		_, _, err := execute(t, "emit", "--name", "x")
		assert.Error(t, err)
	})
}

func TestParseMeta(t *testing.T) {
	meta, err := parseMeta([]string{"a=1", "b=x=y"})
	require.NoError(t, err)
	assert.Equal(t, "1", meta["a"])
	assert.Equal(t, "x=y", meta["b"])

	_, err = parseMeta([]string{"=v"})
	assert.Error(t, err)
}
