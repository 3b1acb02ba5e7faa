package fsutils

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CreateDir creates a directory if it doesn't exist.
func CreateDir(path string) error {
	return os.MkdirAll(path, 0755) // Use standard permission bits
}

// WriteToFile writes content to a file, overwriting if it exists.
func WriteToFile(path string, content []byte) error {
	return os.WriteFile(path, content, 0644) // Standard file permissions
}

// ReadFile reads the content of a file.
func ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FileExists checks if a path exists and is a regular file (not a directory).
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		// Treat any stat failure (not just NotExist) as "not usable".
		return false
	}
	return !info.IsDir()
}

// DirSize returns the total size in bytes of all regular files under
// the given directory. A missing directory counts as zero bytes.
func DirSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	return total, nil
}

// nonAlphanumericRegex matches any character that is NOT a lowercase letter, number, or underscore.
// Periods are explicitly allowed for file extensions.
var nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9_.]+`)
var collapseUnderscoreRegex = regexp.MustCompile(`_+`) // Regex to find consecutive underscores

// SanitizeFilename converts a string into a safe format suitable for filenames.
// It converts to lowercase, replaces spaces and disallowed characters with underscores,
// collapses consecutive underscores, and trims leading/trailing spaces.
func SanitizeFilename(name string) string {
	lower := strings.ToLower(name)
	trimmed := strings.TrimSpace(lower)
	noSpaces := strings.ReplaceAll(trimmed, " ", "_")
	sanitized := nonAlphanumericRegex.ReplaceAllString(noSpaces, "_")
	collapsed := collapseUnderscoreRegex.ReplaceAllString(sanitized, "_")
	if collapsed == "" && name != "" {
		return "_"
	}
	return collapsed
}
