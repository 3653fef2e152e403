// Package version reads the application version from the file shipped
// next to the executable.
package version

import (
	"os"
	"path/filepath"
	"strings"
)

// Fallback is used when no version file is found.
const Fallback = "2.0.0"

// FileName is the version file looked up beside the executable.
const FileName = "version.txt"

// Read returns the trimmed contents of path, or Fallback when the file is
// missing or empty.
func Read(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fallback
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return Fallback
	}
	return v
}

// DefaultPath returns version.txt in the executable's directory.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return FileName
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}
