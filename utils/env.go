package utils

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// how far up LoadDotEnv and FindProjectRoot walk
const maxParentLevels = 6

// LoadDotEnv loads variables from a .env file if present. Already-set
// variables are not overridden.
//
// With no paths it tries the CWD, then each parent directory, stopping at
// the project root (see FindProjectRoot) or after maxParentLevels.
func LoadDotEnv(paths ...string) error {
	if len(paths) > 0 {
		return godotenv.Load(paths...)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	// no root is fine, the level cap still applies
	root, _ := FindProjectRoot(wd)

	dir := wd
	for range maxParentLevels + 1 {
		envPath := filepath.Join(dir, ".env")
		if isFile(envPath) {
			return godotenv.Load(envPath)
		}
		if dir == root {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return os.ErrNotExist
}

// FindProjectRoot walks up from start until it finds a directory with go.mod.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for range maxParentLevels + 1 {
		if isFile(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", errors.New("project root not found: no go.mod above " + start)
}

// GetEnv returns the environment variable value if set, or the default.
func GetEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func isFile(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}
