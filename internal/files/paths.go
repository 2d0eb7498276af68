// Package files handles the filesystem boundary: path resolution and
// reading tabular input in its supported formats.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ierrors "enrichcli/internal/errors"
)

// ResolvePath expands a leading "~" to the user's home directory and turns
// relative paths into absolute ones.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", ierrors.NewValidationError("path must not be empty")
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", ierrors.NewStorageError("failed to resolve home directory", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", ierrors.NewStorageError(fmt.Sprintf("failed to resolve path %s", path), err)
	}
	return abs, nil
}

// EnsureDir creates the directory holding the given file path if needed.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ierrors.NewStorageError(fmt.Sprintf("failed to create directory %s", dir), err)
	}
	return nil
}

// DefaultOutputPath derives an output path from the input path and output
// format: "prices.csv" becomes "prices_enriched.csv" or "prices_enriched.json".
func DefaultOutputPath(inputPath, format string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + "_enriched." + format
}
