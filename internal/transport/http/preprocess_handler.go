package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"golang.org/x/sync/semaphore"

	apperrors "tabprep/internal/errors"
	"tabprep/internal/validation"
	api "tabprep/pkg/contracts/api/v1"
)

// PreprocessHandler triggers preprocessing runs over HTTP. Runs are
// serialized: a request waits for the running one to finish and gives up with
// 503 when its own context ends first.
type PreprocessHandler struct {
	service    PreprocessServiceInterface
	sem        *semaphore.Weighted
	runTimeout time.Duration
	validator  *validation.FileValidator
	logger     *slog.Logger
}

// NewPreprocessHandler creates a new preprocess handler
func NewPreprocessHandler(service PreprocessServiceInterface, runTimeout time.Duration, logger *slog.Logger) *PreprocessHandler {
	logger = logger.With(slog.String("handler", "preprocess"))
	return &PreprocessHandler{
		service:    service,
		sem:        semaphore.NewWeighted(1),
		runTimeout: runTimeout,
		validator:  validation.NewFileValidator(logger),
		logger:     logger,
	}
}

// Preprocess handles POST /api/v1/preprocess
func (h *PreprocessHandler) Preprocess(w http.ResponseWriter, r *http.Request) {
	var req api.PreprocessRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Invalid preprocess request",
			slog.String("error", err.Error()))
		_ = render.Render(w, r, apperrors.InvalidRequestWithError(err))
		return
	}

	if failures := h.validator.ValidateEntries(req.Files); len(failures) > 0 {
		_ = render.Render(w, r, apperrors.NewValidationErrors(failures))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.runTimeout)
	defer cancel()

	if err := h.sem.Acquire(ctx, 1); err != nil {
		h.logger.WarnContext(ctx, "Gave up waiting for running preprocess run",
			slog.String("error", err.Error()))
		_ = render.Render(w, r, apperrors.ErrRunInProgress)
		return
	}
	defer h.sem.Release(1)

	result, err := h.service.Run(ctx, req.Files)
	if err != nil {
		render.Status(r, apperrors.HTTPStatus(apperrors.TypeOf(err)))
		render.JSON(w, r, apperrors.NewFailureResponse(err))
		return
	}

	render.JSON(w, r, result)
}
