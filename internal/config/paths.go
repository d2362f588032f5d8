package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProcessedFileName returns the file name a cleaned table is written under
func ProcessedFileName(tableName string) string {
	return ProcessedFilePrefix + tableName + ProcessedFileExt
}

// ProcessedPath returns the full output path for a cleaned table
func (o OutputConfig) ProcessedPath(tableName string) string {
	return filepath.Join(o.Dir, ProcessedFileName(tableName))
}

// EnsureDirectories creates the output directory and, when logging to a file,
// the log directory
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Output.Dir}
	if c.Logging.Output == "file" || c.Logging.Output == "both" {
		dirs = append(dirs, filepath.Dir(c.Logging.FilePath))
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
