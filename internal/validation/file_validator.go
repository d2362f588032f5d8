package validation

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "tabprep/internal/errors"
	"tabprep/pkg/contracts/domain"
)

// FileValidator checks manifest entries and the output directory before a run
type FileValidator struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return &FileValidator{
		logger:   logger,
		validate: v,
	}
}

// jsonFieldName reports fields by their JSON key
func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// ValidateEntries checks that every entry names both a path and a display
// name. The returned slice lists one failure per missing field, with the
// field reported as files[i].<json key>.
func (v *FileValidator) ValidateEntries(files []domain.FileInfo) []apperrors.ValidationError {
	var failures []apperrors.ValidationError

	for i, file := range files {
		err := v.validate.Struct(file)
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			failures = append(failures, apperrors.ValidationError{
				Field:   fmt.Sprintf("files[%d]", i),
				Message: err.Error(),
			})
			continue
		}
		for _, fe := range fieldErrs {
			failures = append(failures, apperrors.ValidationError{
				Field:   fmt.Sprintf("files[%d].%s", i, fe.Field()),
				Message: describeTag(fe),
			})
		}
	}

	if len(failures) > 0 {
		v.logger.Warn("Manifest entries failed validation",
			slog.Int("entries", len(files)),
			slog.Int("failures", len(failures)))
	}
	return failures
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	// Try to create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify it's writable by creating a test file
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
