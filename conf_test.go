package todo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{KeyDatabaseURL, KeyLogLevel, KeyLogPath, KeyDateFormat, KeyDevMode} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_CreatesDefaultConfFile(t *testing.T) {
	clearEnv(t)
	confFile := filepath.Join(t.TempDir(), "todo", "todo.conf")

	conf, err := LoadConfig(confFile)

	require.NoError(t, err)
	assert.Equal(t, DefaultDatabaseURL, conf.DatabaseURL)
	assert.Equal(t, DefaultLogLevel, conf.LogLevel)
	assert.Equal(t, DefaultLogPath, conf.LogPath)
	assert.Equal(t, DefaultDateFormat, conf.DateFormat)
	assert.False(t, conf.DevMode)

	written, err := godotenv.Read(confFile)
	require.NoError(t, err)
	assert.Equal(t, DefaultDatabaseURL, written[KeyDatabaseURL])
	assert.Equal(t, DefaultLogLevel, written[KeyLogLevel])
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	confFile := filepath.Join(t.TempDir(), "todo.conf")
	require.NoError(t, godotenv.Write(map[string]string{
		KeyDatabaseURL: "/from/file.db",
		KeyLogLevel:    "INFO",
	}, confFile))
	t.Setenv(KeyLogLevel, "ERROR")

	conf, err := LoadConfig(confFile)

	require.NoError(t, err)
	assert.Equal(t, "/from/file.db", conf.DatabaseURL)
	assert.Equal(t, "ERROR", conf.LogLevel)
	assert.Equal(t, DefaultDateFormat, conf.DateFormat)
}

func TestLoadConfig_DevMode(t *testing.T) {
	clearEnv(t)
	confFile := filepath.Join(t.TempDir(), "todo.conf")
	t.Setenv(KeyDevMode, "1")
	t.Setenv(KeyLogLevel, "ERROR")

	conf, err := LoadConfig(confFile)

	require.NoError(t, err)
	assert.True(t, conf.DevMode)
	assert.Equal(t, "DEBUG", conf.LogLevel)
	assert.Equal(t, filepath.Join(os.TempDir(), "todo-dev.db"), conf.DatabaseURL)
}

func TestLoadConfig_UnreadableConfFile(t *testing.T) {
	clearEnv(t)
	// a directory where the file should be
	confFile := t.TempDir()

	_, err := LoadConfig(confFile)

	assert.Error(t, err)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", coalesce("", "b", "c"))
	assert.Equal(t, "", coalesce("", ""))
}
