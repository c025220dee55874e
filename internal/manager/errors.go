package manager

import "errors"

// modelFileNotFoundError is returned by LoadModel when the path does not exist,
// so the HTTP layer can answer 400 instead of 500.
type modelFileNotFoundError struct{ path string }

func (e modelFileNotFoundError) Error() string { return "model file not found: " + e.path }

// ErrModelFileNotFound constructs a modelFileNotFoundError.
func ErrModelFileNotFound(path string) error { return modelFileNotFoundError{path: path} }

// IsModelFileNotFound reports whether err indicates a missing model file.
func IsModelFileNotFound(err error) bool {
	var e modelFileNotFoundError
	return errors.As(err, &e)
}
