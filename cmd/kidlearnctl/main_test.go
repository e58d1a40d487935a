package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidlearn/internal/security"
)

func TestHashPasswordCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetIn(strings.NewReader("from-stdin\n"))
	rootCmd.SetArgs([]string{"hash-password"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	hash := strings.TrimSpace(out.String())
	assert.True(t, security.CheckPassword("from-stdin", hash))
}

func TestBackupCommands(t *testing.T) {
	dir := t.TempDir()
	dbPath := dir + "/ctl.db"
	backupPath := dir + "/out/backup.json"

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"export", "--db", dbPath, "--output", backupPath})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Export complete")

	out.Reset()
	rootCmd.SetArgs([]string{"import", "--db", dbPath, "--input", backupPath, "--clear", "--yes"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Import complete")
}
