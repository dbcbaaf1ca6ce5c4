package agent

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/jdwp/internal/request"
)

// Sentinel errors for configuration loading.
var (
	// ErrUnsupportedFormat is returned for config files that are neither
	// YAML nor JSON.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrInvalidConfig is returned when a loaded config fails validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the agent's startup options.
type Config struct {
	// Logging configures the agent log.
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Requests configures the request table.
	Requests RequestsConfig `yaml:"requests" json:"requests"`

	// Trace configures occurrence tracing.
	Trace TraceConfig `yaml:"trace" json:"trace"`
}

// LoggingConfig configures the agent log.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn or error.
	Level string `yaml:"level" json:"level"`

	// File is the log destination path. Empty means stderr.
	File string `yaml:"file" json:"file"`
}

// RequestsConfig configures the request table.
type RequestsConfig struct {
	// Limit caps the number of outstanding requests. Zero is unlimited.
	Limit int `yaml:"limit" json:"limit"`

	// DefaultSuspend is the suspend policy assumed for tooling that does
	// not specify one: none, thread or all.
	DefaultSuspend string `yaml:"defaultSuspend" json:"defaultSuspend"`
}

// TraceConfig configures debug tracing of occurrences.
type TraceConfig struct {
	// Patterns lists class patterns (same syntax as ClassMatch) whose
	// occurrences are logged at debug level during dispatch.
	Patterns []string `yaml:"patterns" json:"patterns"`

	// Exclude lists class patterns removed from tracing even when a
	// pattern above matches, such as "java.*" noise under a broad "*".
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Logging:  LoggingConfig{Level: "info"},
		Requests: RequestsConfig{DefaultSuspend: "all"},
	}
}

// LoadConfig reads a YAML or JSON config file, applies environment
// overrides, and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".json":
		if err := parseJSONConfig(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("config %s: %w", path, ErrUnsupportedFormat)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parseJSONConfig fills cfg from a JSON document, leaving absent paths at
// their current values.
func parseJSONConfig(data []byte, cfg *Config) error {
	if !gjson.ValidBytes(data) {
		return errors.New("malformed JSON")
	}

	if v := gjson.GetBytes(data, "logging.level"); v.Exists() {
		cfg.Logging.Level = v.String()
	}
	if v := gjson.GetBytes(data, "logging.file"); v.Exists() {
		cfg.Logging.File = v.String()
	}
	if v := gjson.GetBytes(data, "requests.limit"); v.Exists() {
		cfg.Requests.Limit = int(v.Int())
	}
	if v := gjson.GetBytes(data, "requests.defaultSuspend"); v.Exists() {
		cfg.Requests.DefaultSuspend = v.String()
	}
	if v := gjson.GetBytes(data, "trace.patterns"); v.Exists() {
		cfg.Trace.Patterns = nil
		for _, p := range v.Array() {
			cfg.Trace.Patterns = append(cfg.Trace.Patterns, p.String())
		}
	}
	if v := gjson.GetBytes(data, "trace.exclude"); v.Exists() {
		cfg.Trace.Exclude = nil
		for _, p := range v.Array() {
			cfg.Trace.Exclude = append(cfg.Trace.Exclude, p.String())
		}
	}
	return nil
}

// applyEnv overlays JDWP_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("JDWP_LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv("JDWP_LOG_FILE"); ok {
		c.Logging.File = v
	}
	if v, ok := os.LookupEnv("JDWP_REQUEST_LIMIT"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Requests.Limit = n
		}
	}
	if v, ok := os.LookupEnv("JDWP_DEFAULT_SUSPEND"); ok {
		c.Requests.DefaultSuspend = v
	}
	if v, ok := os.LookupEnv("JDWP_TRACE_PATTERNS"); ok {
		c.Trace.Patterns = splitPatterns(v)
	}
	if v, ok := os.LookupEnv("JDWP_TRACE_EXCLUDE"); ok {
		c.Trace.Exclude = splitPatterns(v)
	}
}

// splitPatterns parses a comma-separated pattern list from an env var.
func splitPatterns(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the config for values that cannot be acted on.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Requests.DefaultSuspend) {
	case "", "none", "thread", "all":
	default:
		return fmt.Errorf("%w: defaultSuspend %q", ErrInvalidConfig, c.Requests.DefaultSuspend)
	}
	if c.Requests.Limit < 0 {
		return fmt.Errorf("%w: negative request limit %d", ErrInvalidConfig, c.Requests.Limit)
	}
	return nil
}

// SuspendPolicy returns the configured default suspend policy.
func (c *Config) SuspendPolicy() request.SuspendPolicy {
	switch strings.ToLower(c.Requests.DefaultSuspend) {
	case "none":
		return request.SuspendNone
	case "thread":
		return request.SuspendEventThread
	default:
		return request.SuspendAll
	}
}
