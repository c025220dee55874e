package types

import "encoding/json"

// ChatCompletionMessageFunctionCall is a function invocation attached to a message.
type ChatCompletionMessageFunctionCall struct {
	// Function name.
	// example: lookup
	Name string `json:"name" example:"lookup"`
	// JSON-encoded arguments.
	// example: {"q": "x"}
	Arguments string `json:"arguments" example:"{\"q\": \"x\"}"`
}

// ChatCompletionRequestMessage is one message of the conversation history.
type ChatCompletionRequestMessage struct {
	// Author role. One of system, user, assistant, function.
	// example: user
	Role string `json:"role" validate:"required,oneof=system user assistant function" example:"user"`
	// Message text; may be null for function-call messages.
	// example: What is the capital of France?
	Content *string `json:"content" example:"What is the capital of France?"`
	// Optional author name.
	Name *string `json:"name,omitempty"`
	// Function call emitted by an earlier assistant turn. Accepted but not replayed into the prompt.
	FunctionCall *ChatCompletionMessageFunctionCall `json:"function_call,omitempty"`
}

// ChatCompletionFunction describes a function the model may invoke.
type ChatCompletionFunction struct {
	// example: lookup
	Name string `json:"name" validate:"required" example:"lookup"`
	// example: Search the knowledge base
	Description string `json:"description" example:"Search the knowledge base"`
	// JSON schema of the parameters object, passed to the model verbatim.
	Parameters json.RawMessage `json:"parameters,omitempty" swaggertype:"object"`
}

// CreateChatCompletionRequest is the body of POST /api/v1/chat/completions.
// Optional sampling fields are pointers so absence can be told apart from zero.
type CreateChatCompletionRequest struct {
	// Conversation history, oldest first.
	Messages []ChatCompletionRequestMessage `json:"messages" validate:"required,min=1,dive"`
	// Model name echoed back in the response.
	// example: mistral-7b-instruct
	Model string `json:"model" validate:"required" example:"mistral-7b-instruct"`
	// Functions the model may call.
	Functions []ChatCompletionFunction `json:"functions,omitempty" validate:"omitempty,dive"`
	// "none", "auto" or {"name": "..."}.
	FunctionCall json.RawMessage `json:"function_call,omitempty" validate:"omitempty,function_call" swaggertype:"string"`
	// example: 256
	MaxTokens *int `json:"max_tokens,omitempty" validate:"omitnil,min=1" example:"256"`
	// example: 0.2
	Temperature *float64 `json:"temperature,omitempty" validate:"omitnil,min=0,max=2" example:"0.2"`
	// example: 0.9
	TopP *float64 `json:"top_p,omitempty" validate:"omitnil,min=0,max=1" example:"0.9"`
	// Top-K sampling, an extension to the OpenAI schema.
	// example: 25
	TopK *int `json:"top_k,omitempty" validate:"omitnil,min=0" example:"25"`
	// Number of choices. Accepted for compatibility; the model host produces one.
	// example: 1
	N *int `json:"n,omitempty" validate:"omitnil,min=1,max=128" example:"1"`
	// example: 0
	PresencePenalty *float64 `json:"presence_penalty,omitempty" validate:"omitnil,min=-2,max=2" example:"0"`
	// example: 0
	FrequencyPenalty *float64 `json:"frequency_penalty,omitempty" validate:"omitnil,min=-2,max=2" example:"0"`
	// A string or a list of strings. The template's stop sequence takes precedence.
	Stop json.RawMessage `json:"stop,omitempty" validate:"omitempty,stop_sequences" swaggertype:"string"`
	LogitBias map[string]int `json:"logit_bias,omitempty"`
	// Streaming is not supported; true is rejected.
	// example: false
	Stream *bool `json:"stream,omitempty" validate:"omitnil,eq=false" example:"false"`
	User   string `json:"user,omitempty"`
	// Prompt template override for this request (default, chatml).
	// example: chatml
	PromptTemplate string `json:"prompt_template,omitempty" example:"chatml"`
}

// ChatCompletionResponseMessage is a generated message.
type ChatCompletionResponseMessage struct {
	// example: system
	Role string `json:"role" example:"system"`
	// example: Paris.
	Content      *string                            `json:"content" example:"Paris."`
	FunctionCall *ChatCompletionMessageFunctionCall `json:"function_call,omitempty"`
}

// CreateChatCompletionChoice is one generated alternative.
type CreateChatCompletionChoice struct {
	// example: 0
	Index int `json:"index" example:"0"`
	// One of stop, length, function_call, content_filter.
	// example: stop
	FinishReason string                        `json:"finish_reason" example:"stop"`
	Message      ChatCompletionResponseMessage `json:"message"`
}

// CompletionUsage reports token counts for a completion.
type CompletionUsage struct {
	// example: 2
	CompletionTokens int `json:"completion_tokens" example:"2"`
	// example: 5
	PromptTokens int `json:"prompt_tokens" example:"5"`
	// example: 7
	TotalTokens int `json:"total_tokens" example:"7"`
}

// CreateChatCompletionResponse is returned by POST /api/v1/chat/completions.
type CreateChatCompletionResponse struct {
	// example: chatcmpl-5f0c1b7e-8c1e-4a36-9d2b-2f3a8f6b1c11
	ID string `json:"id" example:"chatcmpl-5f0c1b7e-8c1e-4a36-9d2b-2f3a8f6b1c11"`
	// example: chat.completion
	Object string `json:"object" example:"chat.completion"`
	// Unix seconds.
	// example: 1700000000
	Created int64 `json:"created" example:"1700000000"`
	// example: mistral-7b-instruct
	Model   string                       `json:"model" example:"mistral-7b-instruct"`
	Choices []CreateChatCompletionChoice `json:"choices"`
	Usage   CompletionUsage              `json:"usage"`
}
