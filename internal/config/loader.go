package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified"; ApplyDefaults fills them.
type Config struct {
	Addr      string `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel  string `json:"log_level" yaml:"log_level" toml:"log_level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `json:"log_format" yaml:"log_format" toml:"log_format" validate:"omitempty,oneof=json console"`
	// HTTPLogLevel is the per-request log level used when a request does not
	// override it (off, error, info, debug).
	HTTPLogLevel string `json:"http_log_level" yaml:"http_log_level" toml:"http_log_level" validate:"omitempty,oneof=off error info debug"`
	MaxBodyBytes int64  `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" validate:"gte=0"`
	// MaxAttempts bounds generations per chat request.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts" validate:"gte=0,lte=100"`

	Sampling     SamplingConfig `json:"sampling" yaml:"sampling" toml:"sampling"`
	LoadDefaults ModelOptions   `json:"load_defaults" yaml:"load_defaults" toml:"load_defaults"`
	// Model, when set, is loaded at startup.
	Model *ModelConfig `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`
	CORS  CORSConfig   `json:"cors" yaml:"cors" toml:"cors"`
}

// SamplingConfig holds defaults for sampling fields a request leaves out.
type SamplingConfig struct {
	MaxTokens   int      `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens" validate:"gte=0"`
	Temperature *float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" toml:"temperature,omitempty" validate:"omitnil,gte=0,lte=2"`
	TopP        float64  `json:"top_p" yaml:"top_p" toml:"top_p" validate:"gte=0,lte=1"`
	TopK        int      `json:"top_k" yaml:"top_k" toml:"top_k" validate:"gte=0"`
}

// ModelOptions mirrors the load-model request options.
type ModelOptions struct {
	ContextSize    int    `json:"n_ctx" yaml:"n_ctx" toml:"n_ctx" validate:"gte=0"`
	BatchSize      int    `json:"n_batch" yaml:"n_batch" toml:"n_batch" validate:"gte=0"`
	GPULayers      *int   `json:"n_gpu_layers,omitempty" yaml:"n_gpu_layers,omitempty" toml:"n_gpu_layers,omitempty" validate:"omitnil,gte=-1"`
	Threads        int    `json:"n_threads" yaml:"n_threads" toml:"n_threads" validate:"gte=0"`
	PromptTemplate string `json:"prompt_tmpl" yaml:"prompt_tmpl" toml:"prompt_tmpl"`
}

// ModelConfig describes a model to load at startup.
type ModelConfig struct {
	Path    string       `json:"path" yaml:"path" toml:"path" validate:"required"`
	Options ModelOptions `json:"options" yaml:"options" toml:"options"`
}

// CORSConfig enables the CORS middleware.
type CORSConfig struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
