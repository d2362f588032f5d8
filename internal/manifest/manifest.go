package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/tidwall/jsonc"

	apperrors "tabprep/internal/errors"
	"tabprep/internal/validation"
	"tabprep/pkg/contracts/domain"
)

// Parse decodes a manifest: a JSON array of {file_path, file_name} objects.
// Comments and trailing commas are accepted. Unknown keys are ignored. Any
// malformed or incomplete entry fails the whole manifest.
func Parse(data []byte) ([]domain.FileInfo, error) {
	clean := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(clean) == 0 {
		return nil, apperrors.NewManifestError("manifest is empty", nil)
	}
	if clean[0] != '[' {
		return nil, apperrors.NewManifestError("manifest must be a JSON array", nil)
	}

	var files []domain.FileInfo
	if err := json.Unmarshal(clean, &files); err != nil {
		return nil, apperrors.NewManifestError("failed to decode manifest", err)
	}

	if failures := validation.NewFileValidator(slog.Default()).ValidateEntries(files); len(failures) > 0 {
		return nil, apperrors.NewManifestValidationError(failures)
	}

	return files, nil
}

// ParseFile reads and parses the manifest at path
func ParseFile(path string) ([]domain.FileInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewManifestError(fmt.Sprintf("failed to read manifest %s", path), err)
	}
	return Parse(data)
}
