package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, NewVersionCommand("1.2.3"))
	require.NoError(t, err)
	assert.Contains(t, out, "sqlgate v1.2.3")
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, NewCheckCommand(), "SELECT * FROM users LIMIT 10")
	require.NoError(t, err)
	assert.Contains(t, out, "SELECT")
	assert.Contains(t, out, "select only:   yes")
	assert.Contains(t, out, "limit:         10")
}

func TestCheckCommandNonSelect(t *testing.T) {
	out, err := execute(t, NewCheckCommand(), "DROP TABLE users")
	require.NoError(t, err)
	assert.Contains(t, out, "DROP")
	assert.Contains(t, out, "select only:   no")
}

func TestLimitCommand(t *testing.T) {
	out, err := execute(t, NewLimitCommand(), "--max", "100", "SELECT * FROM events")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM events\nLIMIT 100\n", out)
}

func TestLimitCommandLowersExisting(t *testing.T) {
	out, err := execute(t, NewLimitCommand(), "--max", "50", "SELECT * FROM events LIMIT 500")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM events LIMIT 50\n", out)
}

func TestSanitizeCommand(t *testing.T) {
	out, err := execute(t, NewSanitizeCommand(), "status = 'active'")
	require.NoError(t, err)
	assert.Equal(t, "status = 'active'\n", out)
}

func TestSanitizeCommandRejectsInjection(t *testing.T) {
	_, err := execute(t, NewSanitizeCommand(), "1 = 1; DROP TABLE users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsafe clause")
}

func TestTablesCommandStdin(t *testing.T) {
	cmd := NewTablesCommand()
	cmd.SetIn(strings.NewReader("SELECT * FROM a JOIN b ON a.id = b.id"))
	out, err := execute(t, cmd, "--format", "json")
	require.NoError(t, err)

	var results []fileTables
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "(stdin)", results[0].File)
	assert.Equal(t, []string{"a", "b"}, results[0].Tables)
}

func TestTablesCommandFiles(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "one.sql")
	two := filepath.Join(dir, "two.sql")
	require.NoError(t, os.WriteFile(one, []byte("SELECT * FROM orders"), 0o600))
	require.NoError(t, os.WriteFile(two, []byte("SELECT * FROM sch.users"), 0o600))

	out, err := execute(t, NewTablesCommand(), "--format", "json", one, two)
	require.NoError(t, err)

	var results []fileTables
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 2)
	assert.Equal(t, []string{"orders"}, results[0].Tables)
	assert.Equal(t, []string{"sch.users"}, results[1].Tables)
}

func TestReadSQLEmpty(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("  \n"))
	_, err := readSQL(cmd, nil)
	require.Error(t, err)
}
