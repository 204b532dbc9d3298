package truth

import (
	"github.com/cockroachdb/errors"
)

// Sentinels matched by the error types below, for use with errors.Is.
var (
	ErrAssertion  = errors.New("assertion failed")
	ErrUsage      = errors.New("invalid use of truth")
	ErrUnresolved = errors.New("unresolved assertion")
)

// AssertionFailure is raised when a proposition does not hold.
type AssertionFailure struct {
	Message string
}

func (e *AssertionFailure) Error() string { return e.Message }

func (e *AssertionFailure) Is(target error) bool { return target == ErrAssertion }

// UsageError is raised when the API itself is misused, for instance calling
// a proposition that the subject's value does not support.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

func (e *UsageError) Is(target error) bool { return target == ErrUsage }

// LifecycleError aggregates every subject that was created but never
// evaluated.
type LifecycleError struct {
	Message    string
	Unresolved []Unresolved
}

func (e *LifecycleError) Error() string { return e.Message }

func (e *LifecycleError) Is(target error) bool { return target == ErrUnresolved }

// withStack attaches the stack of the failing proposition. The message is
// unchanged.
func withStack(err error) error {
	return errors.WithStackDepth(err, 1)
}
