package motion

import (
	"errors"
	"strings"
)

// Error taxonomy. Callers match with errors.Is; returned errors wrap one of
// these with context.
var (
	// ErrInvalidValue reports a non-finite number, a negative duration or
	// delay, an invalid spring configuration, or a malformed color.
	ErrInvalidValue = errors.New("motion: invalid value")

	// ErrKindMismatch reports an attempt to drive a motion value of one kind
	// with a value of another kind.
	ErrKindMismatch = errors.New("motion: kind mismatch")

	// ErrPropertyUnknown marks a property that has no smooth interpolator and
	// animates with the step rule. It is only ever logged, never returned
	// from Start or Tick.
	ErrPropertyUnknown = errors.New("motion: property has no smooth interpolator")

	// ErrElementGone reports an operation on a destroyed element.
	ErrElementGone = errors.New("motion: element destroyed")
)

// PropertyError wraps an error with the property it concerns.
type PropertyError struct {
	Property string
	Detail   string
	Err      error
}

func (e *PropertyError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	b.WriteString(": ")
	b.WriteString(e.Property)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *PropertyError) Unwrap() error { return e.Err }
