// Package config provides centralized configuration management for tabprep.
// It loads configuration from multiple sources, validates it, and exposes a
// type-safe API for the rest of the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources, later ones winning:
//
//	1. Default values (Default)
//	2. A YAML file (--config, or ./tabprep.yaml when present)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern TABPREP_<SECTION>_<FIELD>:
//
//	TABPREP_OUTPUT_DIR=/srv/reports
//	TABPREP_LOGGING_LEVEL=debug
//	TABPREP_TELEMETRY_METRICS_TEXTFILE=/var/lib/node_exporter/tabprep.prom
//	TABPREP_SERVER_ADDR=:9000
//
// The input manifest is read from TABPREP_FILES_INFO, falling back to the
// unprefixed FILES_INFO used by existing callers.
//
// # Validation
//
// The loaded configuration is checked with go-playground/validator struct
// tags; an invalid level, output mode or delimiter fails Load.
package config
