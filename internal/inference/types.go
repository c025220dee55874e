// Package inference owns the single loaded model and serializes every call
// into it. It is structured by concern:
//
//   - types.go: Host/Model contracts, sampling params, completion shapes.
//   - gate.go: Gate, the exclusive owner of the model handle.
//   - errors.go: sentinel errors and Is* helpers.
//   - metrics.go: Prometheus instruments for lock wait and generation time.
//   - llama.go: in-process go-llama.cpp host, built with `-tags=llama`.
//   - llama_stub.go: CGO-free stub used when the tag is not set.
//   - tokens.go: rough token estimator for hosts that do not report usage.
package inference

import "time"

// Host loads model files into runnable handles.
type Host interface {
	Load(path string, opts LoadOptions) (Model, error)
}

// Model is a loaded model handle. Implementations need not be safe for
// concurrent use; the Gate never calls them concurrently.
type Model interface {
	// Generate runs a full generation for prompt. stop is empty when the
	// prompt format has no terminator.
	Generate(prompt, stop string, params Params) (Output, error)
	// Close releases the handle.
	Close() error
}

// LoadOptions configures how a model file is loaded.
type LoadOptions struct {
	ContextSize  int
	BatchSize    int
	GPULayers    int
	Threads      int // 0 lets the runtime choose
	TemplateName string
}

// Defaults for LoadOptions fields left unset by callers.
const (
	DefaultContextSize = 2048
	DefaultBatchSize   = 1024
	DefaultGPULayers   = -1
)

// Params are the sampling parameters for one generation.
type Params struct {
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}

// DefaultParams returns the sampling defaults applied when a request leaves a
// field unset.
func DefaultParams() Params {
	return Params{MaxTokens: 2048, Temperature: 0.2, TopP: 0.9, TopK: 25}
}

// Output is what a Model returns: either a *Completion or a Stream.
type Output interface {
	isOutput()
}

// Completion is a finished generation.
type Completion struct {
	ID      string
	Created int64
	Choices []Choice
	Usage   Usage
}

func (*Completion) isOutput() {}

// Choice is one generated alternative.
type Choice struct {
	Index        int
	Text         string
	FinishReason string // may be empty when the runtime does not report one
}

// Usage contains token accounting.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Chunk is one increment of a streamed generation.
type Chunk struct {
	Index        int
	Text         string
	FinishReason string
}

// Stream is a lazily produced generation. The Gate refuses it without pulling
// any element.
type Stream func(yield func(Chunk) bool)

func (Stream) isOutput() {}

// ModelInfo describes the currently loaded model.
type ModelInfo struct {
	Path     string
	Options  LoadOptions
	LoadedAt time.Time
}
