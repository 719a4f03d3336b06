package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, ".env", opts.envFile)
	assert.False(t, opts.migrateOnly)

	opts, err = parseFlags([]string{"--migrate-only", "--env-file", "prod.env"})
	require.NoError(t, err)
	assert.True(t, opts.migrateOnly)
	assert.Equal(t, "prod.env", opts.envFile)

	_, err = parseFlags([]string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, loadEnvFile(""))
	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TMS_TEST_ENV_FILE_VALUE=from-file\n"), 0o600))
	t.Setenv("TMS_TEST_ENV_FILE_VALUE", "")
	require.NoError(t, os.Unsetenv("TMS_TEST_ENV_FILE_VALUE"))

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("TMS_TEST_ENV_FILE_VALUE"))
}

func TestPrintMigrations(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMigrations(&buf))
	assert.Contains(t, buf.String(), "00001  00001_create_users.sql")
	assert.Contains(t, buf.String(), "00003  00003_create_tasks.sql")
}
