// Package api contains API contract definitions for the tabprep HTTP trigger.
// Version v1 represents the current stable API version.
package api

import (
	"tabprep/pkg/contracts/domain"
)

// PreprocessRequest is the body of POST /api/v1/preprocess.
type PreprocessRequest struct {
	Files []domain.FileInfo `json:"files" validate:"dive"`
}
