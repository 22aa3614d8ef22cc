package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Version is the glossa release version.
const Version = "0.3.0"

// Config holds all glossa configuration.
type Config struct {
	Tagger     TaggerConfig
	Output     OutputConfig
	Pipeline   PipelineConfig
	TagsetFile string // optional YAML table replacing the built-in one
	LogLevel   string
}

// TaggerConfig selects and configures the tagging backend.
type TaggerConfig struct {
	Provider string // registered provider name: "onnx", "remote"
	ModelDir string
	Endpoint string
	APIKey   string
}

// OutputConfig holds output destination settings.
type OutputConfig struct {
	Format     string // "json" or "text"
	File       string // write to this file instead of stdout
	WebhookURL string // additionally POST annotations here
	Verbosity  string // "minimal", "standard", "full"
	Pretty     bool
}

// PipelineConfig controls batching.
type PipelineConfig struct {
	BatchSize     int
	FlushInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Tagger: TaggerConfig{
			Provider: getenv("GLOSSA_TAGGER", "onnx"),
			ModelDir: getenv("GLOSSA_MODEL_DIR", "models"),
			Endpoint: os.Getenv("GLOSSA_ENDPOINT"),
			APIKey:   os.Getenv("GLOSSA_API_KEY"),
		},
		Output: OutputConfig{
			Format:     getenv("GLOSSA_OUTPUT", "json"),
			File:       os.Getenv("GLOSSA_OUTPUT_FILE"),
			WebhookURL: os.Getenv("GLOSSA_WEBHOOK_URL"),
			Verbosity:  getenv("GLOSSA_VERBOSITY", "standard"),
			Pretty:     getenvBool("GLOSSA_PRETTY", false),
		},
		Pipeline: PipelineConfig{
			BatchSize:     getenvInt("GLOSSA_BATCH_SIZE", 32),
			FlushInterval: getenvDuration("GLOSSA_FLUSH_INTERVAL", 200*time.Millisecond),
		},
		TagsetFile: os.Getenv("GLOSSA_TAGSET_FILE"),
		LogLevel:   getenv("GLOSSA_LOG_LEVEL", "info"),
	}
}

// LoadDotEnv reads KEY=value pairs from path into the environment. Variables
// already set are left alone. A missing file is not an error when path is the
// default ".env".
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) && path == ".env" {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for errors. Returns all problems joined.
// Settings only used by the tag command are checked by ValidateTagging.
func (c Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log level must be debug, info, warn or error, got %q", c.LogLevel))
	}
	if c.TagsetFile != "" {
		if _, err := os.Stat(c.TagsetFile); err != nil {
			errs = append(errs, fmt.Errorf("tagset file: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ValidateTagging checks the tagger, output, and pipeline settings in
// addition to everything Validate checks.
func (c Config) ValidateTagging() error {
	errs := []error{c.Validate()}

	switch c.Tagger.Provider {
	case "onnx":
		for _, name := range []string{"model.onnx", "vocab.txt", "config.json"} {
			p := filepath.Join(c.Tagger.ModelDir, name)
			if _, err := os.Stat(p); err != nil {
				errs = append(errs, fmt.Errorf("model file %s: %w", name, err))
			}
		}
	case "remote":
		if c.Tagger.Endpoint == "" {
			errs = append(errs, errors.New("GLOSSA_ENDPOINT is required for the remote tagger"))
		}
	case "":
		errs = append(errs, errors.New("GLOSSA_TAGGER must name a tagger provider"))
	}

	switch c.Output.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("output format must be json or text, got %q", c.Output.Format))
	}
	switch strings.ToLower(c.Output.Verbosity) {
	case "minimal", "standard", "full":
	default:
		errs = append(errs, fmt.Errorf("verbosity must be minimal, standard or full, got %q", c.Output.Verbosity))
	}

	if c.Pipeline.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("batch size must be at least 1, got %d", c.Pipeline.BatchSize))
	}
	if c.Pipeline.FlushInterval < 0 {
		errs = append(errs, fmt.Errorf("flush interval must be non-negative, got %v", c.Pipeline.FlushInterval))
	}
	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
