package manager

import (
	"time"

	"github.com/rs/zerolog"

	"llamagate/internal/inference"
	"llamagate/internal/pipeline"
	"llamagate/internal/prompt"
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	// Host loads model files. Nil selects the in-process llama host.
	Host inference.Host
	// Templates is the prompt template registry. Nil builds the built-in one.
	Templates *prompt.Registry
	// MaxAttempts bounds generations per chat request (0 = pipeline default).
	MaxAttempts int
	// LoadDefaults fill options a load request leaves out. Zero fields take
	// the inference package defaults.
	LoadDefaults inference.LoadOptions
	// Sampling defaults for fields a chat request leaves out. Zero fields take
	// inference.DefaultParams.
	Sampling inference.Params
	// Publisher receives lifecycle events. Nil drops them.
	Publisher EventPublisher
	// Logger is the fallback logger when a request context carries none.
	Logger *zerolog.Logger
}

func (c ManagerConfig) loadDefaults() inference.LoadOptions {
	d := c.LoadDefaults
	if d.ContextSize <= 0 {
		d.ContextSize = inference.DefaultContextSize
	}
	if d.BatchSize <= 0 {
		d.BatchSize = inference.DefaultBatchSize
	}
	// GPULayers 0 means CPU only; it is defaulted only when no load defaults
	// were given at all.
	if c.LoadDefaults == (inference.LoadOptions{}) {
		d.GPULayers = inference.DefaultGPULayers
	}
	if d.TemplateName == "" {
		d.TemplateName = prompt.DefaultTemplateName
	}
	return d
}

func (c ManagerConfig) sampling() inference.Params {
	def := inference.DefaultParams()
	if c.Sampling == (inference.Params{}) {
		return def
	}
	p := c.Sampling
	if p.MaxTokens <= 0 {
		p.MaxTokens = def.MaxTokens
	}
	if p.TopP <= 0 {
		p.TopP = def.TopP
	}
	if p.TopK <= 0 {
		p.TopK = def.TopK
	}
	return p
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	host := cfg.Host
	if host == nil {
		host = inference.NewLlamaHost()
	}
	templates := cfg.Templates
	if templates == nil {
		templates = prompt.NewRegistry(log)
	}
	pub := cfg.Publisher
	if pub == nil {
		pub = noopPublisher{}
	}
	gate := inference.NewGate(host, inference.WithLogger(log))
	m := &Manager{
		gate:         gate,
		templates:    templates,
		pipe:         pipeline.New(gate, templates, pipeline.WithMaxAttempts(cfg.MaxAttempts), pipeline.WithLogger(log)),
		loadDefaults: cfg.loadDefaults(),
		sampling:     cfg.sampling(),
		publisher:    pub,
		log:          log,
		now:          time.Now,
		customHost:   cfg.Host != nil,
	}
	m.startTime = m.now()
	return m
}
