package lead

import (
	"errors"
	"fmt"
	"time"
)

// Failure kinds reported by the form controller and challenge flow. Callers
// are expected to branch on the kind, not just on error presence, so each
// kind is a distinct type (or sentinel) usable with errors.As / errors.Is.

var (
	// ErrNotVerified is returned by Submit when the phone has not been
	// confirmed yet. It is a gate, not a hard error.
	ErrNotVerified = errors.New("phone number not verified")

	// ErrInvalidCodeLength is returned by SubmitCode before any network
	// call when the code is not exactly six digits.
	ErrInvalidCodeLength = errors.New("verification code must be exactly 6 digits")
)

// RateLimitedError reports an action attempted before its cooldown elapsed
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: retry in %v", e.RetryAfter.Round(time.Second))
}

// ValidationError carries the per-field messages computed by Validate
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// ExternalError wraps a failure from the auth or data-store collaborator.
// The original provider error is preserved for logging; Message holds the
// part safe to show the user.
type ExternalError struct {
	Op      string
	Message string
	Err     error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}

// StateError reports a challenge-flow operation invoked from a state it is
// not valid in.
type StateError struct {
	Op    string
	State ChallengeState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s not valid in state %s", e.Op, e.State)
}

// wrapExternal turns a collaborator failure into an ExternalError, passing
// through errors that already carry a kind.
func wrapExternal(op string, err error) error {
	var ext *ExternalError
	if errors.As(err, &ext) {
		return err
	}
	var se *StateError
	if errors.As(err, &se) {
		return err
	}
	return &ExternalError{Op: op, Message: err.Error(), Err: err}
}
