// Package config loads and validates application settings.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// memoryDatabase is the SQLite DSN for a throwaway in-memory database.
const memoryDatabase = ":memory:"

// ExpandPath resolves a leading ~ and $VAR references in a database path
// and cleans the result. The in-memory DSN is returned as is.
func ExpandPath(path string) string {
	if path == "" || path == memoryDatabase {
		return path
	}

	if rest, ok := strings.CutPrefix(path, "~"); ok && (rest == "" || os.IsPathSeparator(rest[0])) {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + rest
		}
	}

	return filepath.Clean(os.ExpandEnv(path))
}
