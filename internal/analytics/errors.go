package analytics

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteInput rejects input that is missing required values. Nothing is scored.
	ErrIncompleteInput = errors.New("incomplete input")
	ErrInvalidAnswer   = fmt.Errorf("%w: answer out of range", ErrIncompleteInput)
	ErrInvalidEmotion  = fmt.Errorf("%w: unknown emotion", ErrIncompleteInput)

	// ErrUpstreamUnavailable marks a failed or timed out collaborator call.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	ErrUnknownStrategy = errors.New("unknown recommendation strategy")
)
