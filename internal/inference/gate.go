package inference

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"llamagate/internal/logging"
)

// Gate exclusively owns the loaded model handle. Infer, Load and Unload all
// take the same mutex, so a load or unload never races a generation and two
// generations never run against the handle at once. There is no batching:
// callers block for the lock wait plus the whole generation.
type Gate struct {
	mu    sync.Mutex
	host  Host
	model Model

	// info mirrors the handle for lock-free status reads.
	info atomic.Pointer[ModelInfo]
	log  zerolog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithLogger sets the fallback logger used when a call context carries none.
func WithLogger(l zerolog.Logger) GateOption {
	return func(g *Gate) { g.log = l }
}

// NewGate returns a Gate with no model loaded.
func NewGate(host Host, opts ...GateOption) *Gate {
	g := &Gate{host: host, log: zerolog.Nop()}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Load loads path and makes it the current handle. The new handle is built
// before the previous one is closed; if loading fails the previous handle
// stays in place.
func (g *Gate) Load(ctx context.Context, path string, opts LoadOptions) error {
	l := logging.FromContext(ctx, g.log)
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("load: empty model path")
	}
	waitStart := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()
	lockWaitSeconds.WithLabelValues("load").Observe(time.Since(waitStart).Seconds())

	start := time.Now()
	m, err := g.host.Load(path, opts)
	if err != nil {
		l.Error().Err(err).Str("path", path).Msg("model load failed")
		return fmt.Errorf("load %s: %w", path, err)
	}
	if g.model != nil {
		if cerr := g.model.Close(); cerr != nil {
			l.Warn().Err(cerr).Msg("closing replaced model failed")
		}
	}
	g.model = m
	g.info.Store(&ModelInfo{Path: path, Options: opts, LoadedAt: time.Now()})
	modelLoaded.Set(1)
	l.Info().Str("path", path).Str("template", opts.TemplateName).
		Int("context_size", opts.ContextSize).Dur("dur", time.Since(start)).Msg("model loaded")
	return nil
}

// Unload releases the current handle. It reports whether a handle existed.
func (g *Gate) Unload(ctx context.Context) (bool, error) {
	l := logging.FromContext(ctx, g.log)
	waitStart := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()
	lockWaitSeconds.WithLabelValues("unload").Observe(time.Since(waitStart).Seconds())

	if g.model == nil {
		return false, nil
	}
	err := g.model.Close()
	g.model = nil
	g.info.Store(nil)
	modelLoaded.Set(0)
	if err != nil {
		l.Warn().Err(err).Msg("model close reported an error")
		return true, fmt.Errorf("close model: %w", err)
	}
	l.Info().Msg("model unloaded")
	return true, nil
}

// PromptBuilder renders the prompt for the handle a generation will run on.
// It is called with the Gate lock held and must not call back into the Gate.
type PromptBuilder func(info ModelInfo) (prompt, stop string, err error)

// Infer runs one complete generation of a prebuilt prompt. It blocks until the
// lock is acquired and the model has finished.
func (g *Gate) Infer(ctx context.Context, prompt, stop string, params Params) (*Completion, error) {
	return g.InferPrompt(ctx, func(ModelInfo) (string, string, error) { return prompt, stop, nil }, params)
}

// InferPrompt takes the lock, lets build render against the loaded model's
// description and runs the generation before releasing the lock. A load
// queued behind an in-flight call therefore never receives a prompt rendered
// for the model it replaced.
func (g *Gate) InferPrompt(ctx context.Context, build PromptBuilder, params Params) (*Completion, error) {
	l := logging.FromContext(ctx, g.log)
	waitStart := time.Now()
	g.mu.Lock()
	defer g.mu.Unlock()
	wait := time.Since(waitStart)
	lockWaitSeconds.WithLabelValues("infer").Observe(wait.Seconds())

	info := g.info.Load()
	if g.model == nil || info == nil {
		return nil, ErrModelNotLoaded
	}
	prompt, stop, err := build(*info)
	if err != nil {
		return nil, fmt.Errorf("render prompt: %w", err)
	}
	start := time.Now()
	out, err := g.model.Generate(prompt, stop, params)
	dur := time.Since(start)
	generationSeconds.Observe(dur.Seconds())
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	switch o := out.(type) {
	case *Completion:
		if o == nil {
			return nil, fmt.Errorf("generate: model returned no completion")
		}
		l.Debug().Dur("wait", wait).Dur("dur", dur).Int("choices", len(o.Choices)).Msg("generation done")
		return o, nil
	case Stream:
		return nil, ErrStreamingUnsupported
	default:
		return nil, fmt.Errorf("generate: unexpected output type %T", out)
	}
}

// Current returns the loaded model description without taking the generation lock.
func (g *Gate) Current() (ModelInfo, bool) {
	p := g.info.Load()
	if p == nil {
		return ModelInfo{}, false
	}
	return *p, true
}
