package schema

import (
	"llamagate/internal/inference"
	"llamagate/internal/pipeline"
	"llamagate/pkg/types"
)

// GeneratedRole is the role reported on every generated message. Clients of
// this API have always received "system" here, so it is kept as is.
const GeneratedRole = "system"

// ObjectChatCompletion is the object tag of chat completion responses.
const ObjectChatCompletion = "chat.completion"

// ToResponse builds the wire response for a validated result. model is echoed
// from the request.
func ToResponse(model string, res *pipeline.Result) types.CreateChatCompletionResponse {
	out := types.CreateChatCompletionResponse{
		ID:      res.ID,
		Object:  ObjectChatCompletion,
		Created: res.Created,
		Model:   model,
		Choices: make([]types.CreateChatCompletionChoice, len(res.Choices)),
		Usage:   toUsage(res.Usage),
	}
	for i, c := range res.Choices {
		content := c.Text
		msg := types.ChatCompletionResponseMessage{Role: GeneratedRole, Content: &content}
		if c.FunctionCall != nil {
			msg.FunctionCall = &types.ChatCompletionMessageFunctionCall{
				Name:      c.FunctionCall.Name,
				Arguments: c.FunctionCall.Arguments,
			}
		}
		out.Choices[i] = types.CreateChatCompletionChoice{
			Index:        c.Index,
			FinishReason: c.FinishReason,
			Message:      msg,
		}
	}
	return out
}

func toUsage(u inference.Usage) types.CompletionUsage {
	return types.CompletionUsage{
		CompletionTokens: u.CompletionTokens,
		PromptTokens:     u.PromptTokens,
		TotalTokens:      u.TotalTokens,
	}
}

// ToLoadedModel describes info on the wire.
func ToLoadedModel(info inference.ModelInfo) *types.LoadedModel {
	return &types.LoadedModel{
		Path:           info.Path,
		PromptTemplate: info.Options.TemplateName,
		ContextSize:    info.Options.ContextSize,
		BatchSize:      info.Options.BatchSize,
		GPULayers:      info.Options.GPULayers,
		Threads:        info.Options.Threads,
		LoadedAt:       info.LoadedAt.Unix(),
	}
}
