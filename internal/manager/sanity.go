package manager

import "llamagate/internal/inference"

// SanityReport describes whether the model runtime can serve loads.
type SanityReport struct {
	RuntimeAvailable bool   `json:"runtime_available"`
	Error            string `json:"error,omitempty"`
}

// SanityCheck reports whether loads can succeed at all: either the llama
// runtime is compiled in or a host was injected. It does not mutate state.
func (m *Manager) SanityCheck() SanityReport {
	if inference.LlamaBuilt() || m.customHost {
		return SanityReport{RuntimeAvailable: true}
	}
	return SanityReport{Error: "llama support not built (missing 'llama' build tag)"}
}
