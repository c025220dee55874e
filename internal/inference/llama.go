//go:build llama

package inference

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
const llamaBuilt = true

type llamaHost struct{}

// NewLlamaHost returns a Host backed by in-process go-llama.cpp.
func NewLlamaHost() Host { return llamaHost{} }

func (llamaHost) Load(path string, opts LoadOptions) (Model, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("model path is empty")
	}
	mo := []llama.ModelOption{
		llama.SetContext(zn(opts.ContextSize, DefaultContextSize)),
		llama.SetNBatch(zn(opts.BatchSize, DefaultBatchSize)),
	}
	if gl := opts.GPULayers; gl != 0 {
		// llama.cpp treats a large layer count as "offload everything".
		if gl < 0 {
			gl = 9999
		}
		mo = append(mo, llama.SetGPULayers(gl))
	}
	m, err := llama.New(path, mo...)
	if err != nil {
		return nil, err
	}
	return &llamaModel{model: m, threads: opts.Threads}, nil
}

// llamaModel owns one loaded go-llama.cpp handle.
type llamaModel struct {
	model   *llama.LLama
	threads int
}

func (m *llamaModel) Generate(prompt, stop string, params Params) (Output, error) {
	if m.model == nil {
		return nil, errors.New("llama model not initialized")
	}
	text, err := m.model.Predict(prompt, predictOptions(params, stop, m.threads)...)
	if err != nil {
		return nil, err
	}
	promptTokens := EstimateTokens(prompt)
	completionTokens := EstimateTokens(text)
	finish := "stop"
	if params.MaxTokens > 0 && completionTokens >= params.MaxTokens {
		finish = "length"
	}
	return &Completion{
		ID:      "cmpl-" + uuid.NewString(),
		Created: time.Now().Unix(),
		Choices: []Choice{{Index: 0, Text: text, FinishReason: finish}},
		Usage: Usage{
			PromptTokens:     promptTokens,
			CompletionTokens: completionTokens,
			TotalTokens:      promptTokens + completionTokens,
		},
	}, nil
}

func (m *llamaModel) Close() error {
	if m.model != nil {
		m.model.Free()
		m.model = nil
	}
	return nil
}

// predictOptions converts sampling params into go-llama.cpp options.
func predictOptions(params Params, stop string, threads int) []llama.PredictOption {
	po := []llama.PredictOption{
		llama.SetTokens(max(1, params.MaxTokens)),
		llama.SetTopP(float32(zf(params.TopP, float64(llama.DefaultOptions.TopP)))),
		llama.SetTopK(zn(params.TopK, llama.DefaultOptions.TopK)),
		llama.SetTemperature(float32(params.Temperature)),
	}
	if threads > 0 {
		po = append(po, llama.SetThreads(threads))
	}
	if stop != "" {
		po = append(po, llama.SetStopWords(stop))
	}
	return po
}

func zn(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func zf(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}
