package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"tabprep/internal/dataprocessing"
	"tabprep/pkg/contracts/domain"
)

// Discovery builds manifests from the files found in a directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance. Relative directories
// are resolved against basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindTableFiles returns one manifest entry per CSV or Excel file directly
// inside dir, ordered by file name. Subdirectories and other files are
// ignored.
func (d *Discovery) FindTableFiles(dir string) ([]domain.FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	files := make([]domain.FileInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if dataprocessing.DetectFormat(name) == dataprocessing.FormatUnsupported {
			continue
		}

		files = append(files, domain.FileInfo{
			FilePath: filepath.Join(fullPath, name),
			FileName: name,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].FileName < files[j].FileName
	})

	return files, nil
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
