package config

import "time"

// Application constants
const (
	AppName = "tabprep"

	// EnvPrefix namespaces every environment variable read by Load
	EnvPrefix = "TABPREP"

	// ConfigFileName is looked up in the working directory when no explicit
	// config file is given
	ConfigFileName = "tabprep.yaml"

	// Output naming
	ProcessedFilePrefix = "processed_"
	ProcessedFileExt    = ".csv"

	// Defaults
	DefaultOutputDir    = "."
	DefaultDelimiter    = ","
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultLogOutput    = "stderr"
	DefaultLogFile      = "logs/tabprep.log"
	DefaultServerAddr   = ":8080"
	DefaultReadTimeout  = 15 * time.Second
	DefaultWriteTimeout = 5 * time.Minute
	DefaultRunTimeout   = 5 * time.Minute
	DefaultRateLimitRPS = 5
	DefaultRateBurst    = 10
	DefaultMaxBodyBytes = 1 << 20
	DefaultEnvironment  = "development"
	DefaultFilesInfo    = "[]"

	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
