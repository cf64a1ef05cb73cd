package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedRecords = `[
  {"id": "ORD-000002", "type": "inquiry", "status": "New", "name": "Asha", "date": "Oct 17, 2026"},
  {"id": "ORD-000001", "type": "order", "status": "Pending", "name": "Ravi", "phone": "99", "date": "Oct 16, 2026"}
]`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func seedFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "orders.json")
	require.NoError(t, os.WriteFile(path, []byte(seedRecords), 0o644))
	return path
}

func TestListCommand(t *testing.T) {
	path := seedFile(t)

	out, err := execute(t, "list", "-f", path)
	require.NoError(t, err)

	assert.Contains(t, out, "ORD-000002")
	assert.Contains(t, out, "ORD-000001")
	assert.Contains(t, out, "Ravi")
	assert.Less(t, bytes.Index([]byte(out), []byte("ORD-000002")), bytes.Index([]byte(out), []byte("ORD-000001")))
}

func TestStatsCommand(t *testing.T) {
	path := seedFile(t)

	out, err := execute(t, "stats", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "total: 2\npending inquiries: 1\n", out)
}

func TestSetStatusCommand(t *testing.T) {
	path := seedFile(t)

	out, err := execute(t, "set-status", "ORD-000002", "Completed", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "ORD-000002: Completed\n", out)

	out, err = execute(t, "stats", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "total: 2\npending inquiries: 0\n", out)

	_, err = execute(t, "set-status", "ORD-999999", "Completed", "-f", path)
	assert.EqualError(t, err, "order ORD-999999 not found")
}

func TestDeleteCommand(t *testing.T) {
	path := seedFile(t)

	_, err := execute(t, "delete", "ORD-000001", "-f", path)
	require.NoError(t, err)

	out, err := execute(t, "stats", "-f", path)
	require.NoError(t, err)
	assert.Equal(t, "total: 1\npending inquiries: 1\n", out)
}

func TestSetStatusRequiresArgs(t *testing.T) {
	_, err := execute(t, "set-status", "ORD-000001")
	assert.Error(t, err)
}
