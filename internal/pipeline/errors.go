package pipeline

import (
	"errors"
	"fmt"
)

// ErrRetriesExhausted is matched by errors.Is when no attempt produced valid output.
var ErrRetriesExhausted = errors.New("retries exhausted")

var (
	errNoChoices  = errors.New("generation returned no choices")
	errDegenerate = errors.New("generated text is empty")
)

// ParseError marks one generation attempt as invalid. It never leaves the
// pipeline except wrapped in a retries-exhausted error.
type ParseError struct {
	Choice int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("choice %d: %v", e.Choice, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// degenerate reports whether the attempt failed the minimum-content check.
func (e *ParseError) degenerate() bool {
	return errors.Is(e.Err, errDegenerate) || errors.Is(e.Err, errNoChoices)
}

type retriesExhaustedError struct {
	attempts int
	last     error
}

func (e *retriesExhaustedError) Error() string {
	return fmt.Sprintf("no valid generation after %d attempts: %v", e.attempts, e.last)
}

func (e *retriesExhaustedError) Unwrap() error { return e.last }

func (e *retriesExhaustedError) Is(target error) bool { return target == ErrRetriesExhausted }

// IsRetriesExhausted reports whether err ended the retry loop at its ceiling.
func IsRetriesExhausted(err error) bool { return errors.Is(err, ErrRetriesExhausted) }
