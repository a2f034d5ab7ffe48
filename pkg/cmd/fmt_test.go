package cmd_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/pseudomuto/sqlfmt/pkg/cmd"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := &cli.Command{
		Name:     "sqlfmt",
		Commands: []*cli.Command{Fmt(), Tokens()},
		Reader:   strings.NewReader(stdin),
		Writer:   &out,
	}
	err := app.Run(context.Background(), append([]string{"sqlfmt"}, args...))
	return out.String(), err
}

func TestFmt_stdin(t *testing.T) {
	out, err := runCommand(t, "select 1", "fmt")
	require.NoError(t, err)
	require.Equal(t, "select\n  1\n", out)
}

func TestFmt_file(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "query.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT id,name FROM users;"), 0o644))

	out, err := runCommand(t, "", "fmt", path)
	require.NoError(t, err)
	require.Equal(t, "SELECT\n  id,\n  name\nFROM\n  users;\n", out)

	// The source file is untouched without -w.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "SELECT id,name FROM users;", string(content))
}

func TestFmt_writeBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "query.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT id FROM users;"), 0o644))

	out, err := runCommand(t, "", "fmt", "-w", path)
	require.NoError(t, err)
	require.Empty(t, out)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "SELECT\n  id\nFROM\n  users;\n", string(content))
}

func TestFmt_directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.sql"), []byte("SELECT 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "b.sql"), []byte("SELECT 2;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("not sql"), 0o644))

	_, err := runCommand(t, "", "fmt", "-w", dir)
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "a.sql"))
	require.NoError(t, err)
	require.Equal(t, "SELECT\n  1;\n", string(content))

	content, err = os.ReadFile(filepath.Join(dir, "nested", "b.sql"))
	require.NoError(t, err)
	require.Equal(t, "SELECT\n  2;\n", string(content))
}

func TestFmt_emptyDirectory(t *testing.T) {
	_, err := runCommand(t, "", "fmt", t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "no SQL files found")
}

func TestFmt_missingPath(t *testing.T) {
	_, err := runCommand(t, "", "fmt", filepath.Join(t.TempDir(), "nope.sql"))
	require.Error(t, err)
}

func TestFmt_writeRequiresFiles(t *testing.T) {
	_, err := runCommand(t, "select 1", "fmt", "-w")
	require.Error(t, err)
}

func TestFmt_flags(t *testing.T) {
	out, err := runCommand(t, "select id from t", "fmt", "--keyword-case", "upper", "--indent", "4")
	require.NoError(t, err)
	require.Equal(t, "SELECT\n    id\nFROM\n    t\n", out)

	out, err = runCommand(t, "select id from t", "fmt", "--inline")
	require.NoError(t, err)
	require.Equal(t, "select id from t\n", out)

	_, err = runCommand(t, "select 1", "fmt", "--keyword-case", "sideways")
	require.Error(t, err)
}

func TestFmt_configFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fmt.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("uppercase: true\n"), 0o644))

	out, err := runCommand(t, "select 1", "fmt", "--config", cfgPath)
	require.NoError(t, err)
	require.Equal(t, "SELECT\n  1\n", out)

	_, err = runCommand(t, "select 1", "fmt", "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestTokens_plain(t *testing.T) {
	out, err := runCommand(t, "", "tokens", "SELECT id FROM t")
	require.NoError(t, err)
	require.Contains(t, out, "ReservedTopLevel")
	require.Contains(t, out, `"SELECT"`)
	require.Contains(t, out, `"id"`)
	require.NotContains(t, out, "Whitespace")
}

func TestTokens_stdin(t *testing.T) {
	out, err := runCommand(t, "SELECT 1", "tokens")
	require.NoError(t, err)
	require.Contains(t, out, "Number")
}

func TestTokens_file(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "q.sql")
	require.NoError(t, os.WriteFile(path, []byte("SELECT ?1"), 0o644))

	out, err := runCommand(t, "", "tokens", "-f", path)
	require.NoError(t, err)
	require.Contains(t, out, "Placeholder")
}

func TestTokens_pretty(t *testing.T) {
	out, err := runCommand(t, "", "tokens", "--pretty", "SELECT 1")
	require.NoError(t, err)
	require.NotEmpty(t, out)
}
