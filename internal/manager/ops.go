package manager

import (
	"context"
	"time"

	"llamagate/internal/common/fsutil"
	"llamagate/internal/inference"
	"llamagate/internal/logging"
	"llamagate/internal/pipeline"
	"llamagate/internal/schema"
	"llamagate/pkg/types"
)

// ChatResult is a translated chat completion plus the number of generations
// it took.
type ChatResult struct {
	Response types.CreateChatCompletionResponse
	Attempts int
}

// LoadModel validates req, resolves the path and replaces the current model.
// A failed load leaves any previously loaded model serving.
func (m *Manager) LoadModel(ctx context.Context, req *types.LoadModelRequest) error {
	l := logging.FromContext(ctx, m.log)
	if err := schema.Validate(req); err != nil {
		return err
	}
	path, err := fsutil.ResolveModelFile(req.Path)
	if err != nil {
		if !fsutil.IsMissing(err) {
			return err
		}
		err := ErrModelFileNotFound(path)
		m.recordError(err)
		m.publisher.Publish(Event{Name: EventLoadError, Model: path, Fields: map[string]any{"error": err.Error()}})
		return err
	}
	opts := schema.ToLoadOptions(req.Options, m.loadDefaults)
	if _, ok := m.templates.Lookup(opts.TemplateName); !ok {
		l.Warn().Str("template", opts.TemplateName).Msg("unknown prompt template requested at load; requests will use default")
	}

	m.loading.Add(1)
	m.publisher.Publish(Event{Name: EventLoadStart, Model: path, Fields: map[string]any{"template": opts.TemplateName}})
	start := m.now()
	err = m.gate.Load(ctx, path, opts)
	if err != nil {
		m.setFailed(true, err.Error())
	} else {
		m.loadsTotal.Add(1)
		m.setFailed(false, "")
	}
	m.loading.Add(-1)
	if err != nil {
		m.publisher.Publish(Event{Name: EventLoadError, Model: path, Fields: map[string]any{"error": err.Error()}})
		return err
	}
	m.publisher.Publish(Event{Name: EventLoadDone, Model: path, Fields: map[string]any{
		"template": opts.TemplateName,
		"dur_ms":   m.now().Sub(start).Milliseconds(),
	}})
	return nil
}

// UnloadModel releases the current model. Unloading when nothing is loaded is
// not an error; the returned bool reports whether a model was released.
func (m *Manager) UnloadModel(ctx context.Context) (bool, error) {
	info, _ := m.gate.Current()
	released, err := m.gate.Unload(ctx)
	m.setFailed(false, "")
	if err != nil {
		m.recordError(err)
	}
	if released {
		m.publisher.Publish(Event{Name: EventUnloadDone, Model: info.Path})
	}
	return released, err
}

// ChatCompletion validates req, runs it through the retry pipeline and returns
// the OpenAI-shaped response.
func (m *Manager) ChatCompletion(ctx context.Context, req *types.CreateChatCompletionRequest) (*ChatResult, error) {
	if err := schema.Validate(req); err != nil {
		return nil, err
	}
	info, _ := m.gate.Current()
	start := time.Now()
	res, err := m.pipe.Complete(ctx, schema.ToRequest(req, m.sampling))
	if err != nil {
		if !inference.IsModelNotLoaded(err) {
			m.recordError(err)
		}
		m.publisher.Publish(Event{Name: EventChatError, Model: info.Path, Fields: map[string]any{
			"error":             err.Error(),
			"retries_exhausted": pipeline.IsRetriesExhausted(err),
		}})
		return nil, err
	}
	m.publisher.Publish(Event{Name: EventChatDone, Model: info.Path, Fields: map[string]any{
		"attempts": res.Attempts,
		"choices":  len(res.Choices),
		"dur_ms":   time.Since(start).Milliseconds(),
	}})
	return &ChatResult{Response: schema.ToResponse(req.Model, res), Attempts: res.Attempts}, nil
}
