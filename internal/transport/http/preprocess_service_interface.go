package http

import (
	"context"

	"tabprep/pkg/contracts/domain"
)

// PreprocessServiceInterface defines the interface for the preprocessing pipeline
type PreprocessServiceInterface interface {
	Run(ctx context.Context, files []domain.FileInfo) (domain.RunResult, error)
}
