package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	envFileFlag   = "--env-file"
	envFileEnvVar = "ENV_FILE"
)

// LoadEnvFile loads environment variables from a file before cobra parses
// anything, so viper's env bindings already see them.
// Priority: --env-file flag > ENV_FILE environment variable > .env in the
// working directory. A missing default .env is not an error; a missing
// explicitly requested file is.
func LoadEnvFile() error {
	if path := explicitEnvFilePath(); path != "" {
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading env file %s: %w", path, err)
		}
		return nil
	}

	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env file: %w", err)
	}
	return nil
}

// explicitEnvFilePath resolves an env file requested through the --env-file
// flag or the ENV_FILE variable, returning "" when neither is set.
func explicitEnvFilePath() string {
	if path := parseEnvFileFlag(); path != "" {
		return toAbsolutePath(path)
	}
	if path := os.Getenv(envFileEnvVar); path != "" {
		return toAbsolutePath(path)
	}
	return ""
}

// parseEnvFileFlag scans the raw command line for the --env-file flag. It runs
// before cobra gets a chance to parse, so it can't use pflag.
func parseEnvFileFlag() string {
	for i, arg := range os.Args {
		if arg == envFileFlag && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
		if strings.HasPrefix(arg, envFileFlag+"=") {
			return strings.TrimPrefix(arg, envFileFlag+"=")
		}
	}
	return ""
}

func toAbsolutePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}
