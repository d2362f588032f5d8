package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"tabprep/pkg/contracts"
)

// HealthService reports liveness and readiness of the HTTP trigger
type HealthService struct {
	version   string
	outputDir string
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Checks    map[string]string      `json:"checks,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(outputDir string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:   contracts.Version,
		outputDir: outputDir,
		startTime: time.Now(),
		logger:    logger,
	}
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// ReadinessCheck reports "ready" when the output directory exists, or does
// not exist yet but can be created on first write
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Checks:    map[string]string{"output_dir": "ok"},
	}

	info, err := os.Stat(hs.outputDir)
	switch {
	case err == nil && !info.IsDir():
		status.Checks["output_dir"] = "not a directory"
	case err != nil && !os.IsNotExist(err):
		status.Checks["output_dir"] = err.Error()
	}

	if status.Checks["output_dir"] != "ok" {
		status.Status = "not_ready"
		hs.logger.WarnContext(ctx, "Readiness check failed",
			slog.String("output_dir", hs.outputDir),
			slog.String("reason", status.Checks["output_dir"]))
	}
	return status
}
