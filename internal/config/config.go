package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" split_words:"true"`
	Output    OutputConfig    `yaml:"output" split_words:"true"`
	Telemetry TelemetryConfig `yaml:"telemetry" split_words:"true"`
	Server    ServerConfig    `yaml:"server" split_words:"true"`

	// FilesInfo is the raw JSON manifest. TABPREP_FILES_INFO wins over the
	// unprefixed FILES_INFO.
	FilesInfo string `yaml:"files_info" envconfig:"FILES_INFO"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" split_words:"true" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" split_words:"true" validate:"oneof=json text"`
	Output   string `yaml:"output" split_words:"true" validate:"oneof=stderr file both"`
	FilePath string `yaml:"file_path" split_words:"true" validate:"required_unless=Output stderr"`
}

// OutputConfig controls where and how cleaned tables are written
type OutputConfig struct {
	Dir       string `yaml:"dir" split_words:"true" validate:"required"`
	Delimiter string `yaml:"delimiter" split_words:"true" validate:"len=1"`
	BOM       bool   `yaml:"bom" split_words:"true"`
}

// TelemetryConfig contains OpenTelemetry configuration
type TelemetryConfig struct {
	Environment string `yaml:"environment" split_words:"true"`
	Tracing     bool   `yaml:"tracing" split_words:"true"`
	// TraceFile receives exported spans; empty means stderr
	TraceFile string `yaml:"trace_file" split_words:"true"`
	// MetricsTextfile, when set, receives the metrics of a batch run in
	// Prometheus text format
	MetricsTextfile string `yaml:"metrics_textfile" split_words:"true"`
}

// ServerConfig contains HTTP trigger configuration
type ServerConfig struct {
	Addr         string        `yaml:"addr" split_words:"true" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout" split_words:"true" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" split_words:"true" validate:"gt=0"`
	RunTimeout   time.Duration `yaml:"run_timeout" split_words:"true" validate:"gt=0"`
	RateLimitRPS float64       `yaml:"rate_limit_rps" split_words:"true" validate:"gte=0"`
	RateBurst    int           `yaml:"rate_burst" split_words:"true" validate:"gte=1"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" split_words:"true" validate:"gt=0"`

	IdleTimeout     time.Duration `yaml:"idle_timeout" split_words:"true" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" split_words:"true" validate:"gt=0"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (or ./tabprep.yaml when path is empty and the file exists), then
// environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" && FileExists(ConfigFileName) {
		path = ConfigFileName
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// normalize fills values that may legitimately be blank in a file or env
func (c *Config) normalize() {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	c.Logging.Output = strings.ToLower(c.Logging.Output)

	if strings.TrimSpace(c.FilesInfo) == "" {
		c.FilesInfo = DefaultFilesInfo
	}
	if c.Telemetry.Environment == "" {
		c.Telemetry.Environment = DefaultEnvironment
	}
}

// Validate checks the configuration against its struct constraints
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// DelimiterRune returns the output field delimiter
func (o OutputConfig) DelimiterRune() rune {
	for _, r := range o.Delimiter {
		return r
	}
	return ','
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   DefaultLogOutput,
			FilePath: DefaultLogFile,
		},
		Output: OutputConfig{
			Dir:       DefaultOutputDir,
			Delimiter: DefaultDelimiter,
		},
		Telemetry: TelemetryConfig{
			Environment: DefaultEnvironment,
		},
		Server: ServerConfig{
			Addr:         DefaultServerAddr,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			RunTimeout:   DefaultRunTimeout,
			RateLimitRPS: DefaultRateLimitRPS,
			RateBurst:    DefaultRateBurst,
			MaxBodyBytes: DefaultMaxBodyBytes,

			IdleTimeout:     DefaultIdleTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		FilesInfo: DefaultFilesInfo,
	}
}
