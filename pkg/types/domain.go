package types

// ModelLoadingOptions tunes how a model file is loaded. Omitted fields take
// server defaults.
type ModelLoadingOptions struct {
	// Context window in tokens.
	// example: 2048
	ContextSize *int `json:"n_ctx,omitempty" validate:"omitnil,min=1" example:"2048"`
	// Prompt processing batch size.
	// example: 1024
	BatchSize *int `json:"n_batch,omitempty" validate:"omitnil,min=1" example:"1024"`
	// Layers to offload to the GPU; -1 offloads all.
	// example: -1
	GPULayers *int `json:"n_gpu_layers,omitempty" validate:"omitnil,min=-1" example:"-1"`
	// Generation threads; omitted lets the runtime choose.
	// example: 8
	Threads *int `json:"n_threads,omitempty" validate:"omitnil,min=1" example:"8"`
	// Prompt template applied to every request against this model.
	// example: chatml
	PromptTemplate *string `json:"prompt_tmpl,omitempty" example:"chatml"`
}

// LoadModelRequest is the body of POST /config/v1/load-model.
type LoadModelRequest struct {
	// Path to a GGUF model file; a leading ~ is expanded.
	// example: ~/models/mistral-7b-instruct.Q4_K_M.gguf
	Path    string               `json:"path" validate:"required" example:"~/models/mistral-7b-instruct.Q4_K_M.gguf"`
	Options *ModelLoadingOptions `json:"options,omitempty"`
}

// StandardResponse is the body of control-plane replies and of every error.
type StandardResponse struct {
	// example: Model loaded successfully
	Message string `json:"message" example:"Model loaded successfully"`
	// Error detail, present on failures.
	Error string `json:"error,omitempty"`
}

// LoadedModel describes the model currently held by the server.
type LoadedModel struct {
	// example: /home/user/models/mistral-7b-instruct.Q4_K_M.gguf
	Path string `json:"path" example:"/home/user/models/mistral-7b-instruct.Q4_K_M.gguf"`
	// example: chatml
	PromptTemplate string `json:"prompt_tmpl" example:"chatml"`
	// example: 2048
	ContextSize int `json:"n_ctx" example:"2048"`
	// example: 1024
	BatchSize int `json:"n_batch" example:"1024"`
	// example: -1
	GPULayers int `json:"n_gpu_layers" example:"-1"`
	// example: 0
	Threads int `json:"n_threads,omitempty" example:"0"`
	// Unix seconds.
	// example: 1700000000
	LoadedAt int64 `json:"loaded_at_unix" example:"1700000000"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// loaded or unloaded.
	// example: loaded
	State string       `json:"state" example:"loaded"`
	Model *LoadedModel `json:"model,omitempty"`
	// Registered prompt templates.
	Templates []string `json:"templates"`
	// Generation attempts allowed per request.
	// example: 5
	MaxAttempts int `json:"max_attempts" example:"5"`
	// Whether the llama runtime is compiled into this binary.
	// example: true
	RuntimeAvailable bool `json:"runtime_available" example:"true"`
	// Last load or chat error observed.
	LastError string `json:"last_error,omitempty"`
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
	// Total successful model loads.
	// example: 1
	LoadsTotal uint64 `json:"loads_total" example:"1"`
}
