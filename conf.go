package todo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	LogLevel    string
	LogPath     string
	DateFormat  string
	DevMode     bool
}

const (
	KeyDatabaseURL = "TODO_DB_URL"
	KeyLogLevel    = "TODO_LOG_LEVEL"
	KeyLogPath     = "TODO_LOG_PATH"
	KeyDateFormat  = "TODO_DATE_FORMAT"
	KeyDevMode     = "TODO_DEV_MODE"
)

const (
	DefaultLogLevel   = "WARN"
	DefaultDateFormat = "2006-01-02"
)

var (
	userHome, _        = os.UserHomeDir()
	DefaultDatabaseURL = filepath.Join(userHome, ".todo", "todo.db")
	DefaultLogPath     = filepath.Join(userHome, ".todo", "todo.log")
)

// DefaultConfFile is where LoadConfig looks when no path is given.
func DefaultConfFile() string {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		cfgDir = filepath.Join(userHome, ".config")
	}
	return filepath.Join(cfgDir, "todo", "todo.conf")
}

// LoadConfig resolves each key from the environment, then confFile, then the
// defaults. A missing confFile is created holding the defaults.
func LoadConfig(confFile string) (Config, error) {
	confFromEnv := Config{
		DatabaseURL: os.Getenv(KeyDatabaseURL),
		LogLevel:    os.Getenv(KeyLogLevel),
		LogPath:     os.Getenv(KeyLogPath),
		DateFormat:  os.Getenv(KeyDateFormat),
		DevMode:     os.Getenv(KeyDevMode) != "",
	}

	if _, err := os.Stat(confFile); err != nil {
		if err := writeDefaultConf(confFile); err != nil {
			return Config{}, err
		}
	}
	fileVals, err := godotenv.Read(confFile)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read conf file %s: %w", confFile, err)
	}

	conf := Config{
		DatabaseURL: coalesce(confFromEnv.DatabaseURL, fileVals[KeyDatabaseURL], DefaultDatabaseURL),
		LogLevel:    coalesce(confFromEnv.LogLevel, fileVals[KeyLogLevel], DefaultLogLevel),
		LogPath:     coalesce(confFromEnv.LogPath, fileVals[KeyLogPath], DefaultLogPath),
		DateFormat:  coalesce(confFromEnv.DateFormat, fileVals[KeyDateFormat], DefaultDateFormat),
		DevMode:     confFromEnv.DevMode || fileVals[KeyDevMode] != "",
	}

	if conf.DevMode {
		conf.LogLevel = "DEBUG"
		conf.DatabaseURL = filepath.Join(os.TempDir(), "todo-dev.db")
	}

	return conf, nil
}

func writeDefaultConf(confFile string) error {
	if err := os.MkdirAll(filepath.Dir(confFile), 0o744); err != nil {
		return fmt.Errorf("failed to create conf dir: %w", err)
	}
	defaults := map[string]string{
		KeyDatabaseURL: DefaultDatabaseURL,
		KeyLogLevel:    DefaultLogLevel,
		KeyLogPath:     DefaultLogPath,
		KeyDateFormat:  DefaultDateFormat,
	}
	if err := godotenv.Write(defaults, confFile); err != nil {
		return fmt.Errorf("failed to write default conf file: %w", err)
	}
	return nil
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}
