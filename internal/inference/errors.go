package inference

import "errors"

var (
	// ErrModelNotLoaded is returned by Infer when no handle exists.
	ErrModelNotLoaded = errors.New("model not loaded")
	// ErrStreamingUnsupported is returned when a model produced a Stream.
	ErrStreamingUnsupported = errors.New("streaming generation is not supported")
)

// IsModelNotLoaded reports whether err indicates a missing model handle.
func IsModelNotLoaded(err error) bool { return errors.Is(err, ErrModelNotLoaded) }

// IsStreamingUnsupported reports whether err indicates a streamed output.
func IsStreamingUnsupported(err error) bool { return errors.Is(err, ErrStreamingUnsupported) }

// dependencyUnavailableError signals a missing runtime (llama.cpp not built in)
// so the HTTP layer can answer 503 instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing runtime dependency.
func IsDependencyUnavailable(err error) bool {
	var de dependencyUnavailableError
	return errors.As(err, &de)
}
