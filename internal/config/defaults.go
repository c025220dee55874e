package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"llamagate/internal/inference"
	"llamagate/internal/pipeline"
	"llamagate/internal/prompt"
	"llamagate/pkg/types"
)

// Defaults applied by ApplyDefaults.
const (
	DefaultAddr         = ":8080"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultHTTPLogLevel = "info"
	DefaultMaxBodyBytes = 1 << 20
)

// ApplyDefaults fills every unspecified field.
func (c *Config) ApplyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.HTTPLogLevel == "" {
		c.HTTPLogLevel = DefaultHTTPLogLevel
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = pipeline.DefaultMaxAttempts
	}

	sp := inference.DefaultParams()
	if c.Sampling.MaxTokens == 0 {
		c.Sampling.MaxTokens = sp.MaxTokens
	}
	if c.Sampling.Temperature == nil {
		t := sp.Temperature
		c.Sampling.Temperature = &t
	}
	if c.Sampling.TopP == 0 {
		c.Sampling.TopP = sp.TopP
	}
	if c.Sampling.TopK == 0 {
		c.Sampling.TopK = sp.TopK
	}

	d := &c.LoadDefaults
	if d.ContextSize == 0 {
		d.ContextSize = inference.DefaultContextSize
	}
	if d.BatchSize == 0 {
		d.BatchSize = inference.DefaultBatchSize
	}
	if d.GPULayers == nil {
		g := inference.DefaultGPULayers
		d.GPULayers = &g
	}
	if d.PromptTemplate == "" {
		d.PromptTemplate = prompt.DefaultTemplateName
	}
}

var validate = validator.New()

// Validate checks field ranges and enums.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed '%s' %s", fe.Namespace(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// SamplingParams returns the sampling defaults. Call after ApplyDefaults.
func (c Config) SamplingParams() inference.Params {
	p := inference.Params{MaxTokens: c.Sampling.MaxTokens, TopP: c.Sampling.TopP, TopK: c.Sampling.TopK}
	if c.Sampling.Temperature != nil {
		p.Temperature = *c.Sampling.Temperature
	}
	return p
}

// LoadOptions returns the defaults for load requests. Call after ApplyDefaults.
func (c Config) LoadOptions() inference.LoadOptions {
	return c.LoadDefaults.toLoadOptions()
}

func (o ModelOptions) toLoadOptions() inference.LoadOptions {
	out := inference.LoadOptions{
		ContextSize:  o.ContextSize,
		BatchSize:    o.BatchSize,
		Threads:      o.Threads,
		TemplateName: o.PromptTemplate,
	}
	if o.GPULayers != nil {
		out.GPULayers = *o.GPULayers
	}
	return out
}

// AutoloadRequest builds the startup load request, or nil when no model is
// configured. Options left out fall back to the load defaults server-side.
func (c Config) AutoloadRequest() *types.LoadModelRequest {
	if c.Model == nil || strings.TrimSpace(c.Model.Path) == "" {
		return nil
	}
	o := c.Model.Options
	opts := &types.ModelLoadingOptions{GPULayers: o.GPULayers}
	if o.ContextSize > 0 {
		opts.ContextSize = &o.ContextSize
	}
	if o.BatchSize > 0 {
		opts.BatchSize = &o.BatchSize
	}
	if o.Threads > 0 {
		opts.Threads = &o.Threads
	}
	if o.PromptTemplate != "" {
		opts.PromptTemplate = &o.PromptTemplate
	}
	return &types.LoadModelRequest{Path: c.Model.Path, Options: opts}
}
