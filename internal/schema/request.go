// Package schema translates between the OpenAI-shaped wire types in pkg/types
// and the internal pipeline shapes, and validates inbound payloads.
package schema

import (
	"llamagate/internal/inference"
	"llamagate/internal/pipeline"
	"llamagate/internal/prompt"
	"llamagate/pkg/types"
)

// ToRequest builds the internal request. Only role and content of each message
// are carried over. Sampling fields override defaults only when present on the
// wire; an explicit zero is honored.
func ToRequest(req *types.CreateChatCompletionRequest, defaults inference.Params) pipeline.Request {
	out := pipeline.Request{
		Messages: make([]prompt.Message, 0, len(req.Messages)),
		Template: req.PromptTemplate,
		Params:   defaults,
	}
	for _, m := range req.Messages {
		var content string
		if m.Content != nil {
			content = *m.Content
		}
		out.Messages = append(out.Messages, prompt.Message{Role: prompt.Role(m.Role), Content: content})
	}
	if len(req.Functions) > 0 {
		out.Functions = make([]prompt.FunctionDefinition, len(req.Functions))
		for i, f := range req.Functions {
			out.Functions[i] = prompt.FunctionDefinition{Name: f.Name, Description: f.Description, Parameters: f.Parameters}
		}
	}
	if req.MaxTokens != nil {
		out.Params.MaxTokens = *req.MaxTokens
	}
	if req.Temperature != nil {
		out.Params.Temperature = *req.Temperature
	}
	if req.TopP != nil {
		out.Params.TopP = *req.TopP
	}
	if req.TopK != nil {
		out.Params.TopK = *req.TopK
	}
	return out
}

// ToLoadOptions overlays the options present in opts on defaults.
func ToLoadOptions(opts *types.ModelLoadingOptions, defaults inference.LoadOptions) inference.LoadOptions {
	out := defaults
	if opts == nil {
		return out
	}
	if opts.ContextSize != nil {
		out.ContextSize = *opts.ContextSize
	}
	if opts.BatchSize != nil {
		out.BatchSize = *opts.BatchSize
	}
	if opts.GPULayers != nil {
		out.GPULayers = *opts.GPULayers
	}
	if opts.Threads != nil {
		out.Threads = *opts.Threads
	}
	if opts.PromptTemplate != nil {
		out.TemplateName = *opts.PromptTemplate
	}
	return out
}
