//go:build !llama

package inference

// This file provides a no-CGO stub for the llama host. It is compiled when the
// 'llama' build tag is NOT set, keeping default builds and CI CGO-free.

const llamaBuilt = false

type llamaHost struct{}

// NewLlamaHost returns a Host that refuses to load anything because llama.cpp
// support was not compiled in.
func NewLlamaHost() Host { return llamaHost{} }

func (llamaHost) Load(path string, opts LoadOptions) (Model, error) {
	return nil, ErrDependencyUnavailable("llama support not built (missing 'llama' build tag)")
}
