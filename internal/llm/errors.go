package llm

import (
	"fmt"
	"time"
)

// UnavailableError indicates the generation capability is not configured
type UnavailableError struct {
	Reason string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("generation capability unavailable: %s", e.Reason)
	}
	return "generation capability unavailable"
}

// TimeoutError indicates a generation call exceeded its configured bound
type TimeoutError struct {
	Model   string
	Timeout time.Duration
	Cause   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("generation call to %s timed out after %s", e.Model, e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// MalformedOutputError indicates a generation response could not be coerced
// into the required JSON shape after the full recovery attempt. Output carries
// the offending text for diagnostics.
type MalformedOutputError struct {
	Output string
	Cause  error
}

func (e *MalformedOutputError) Error() string {
	out := e.Output
	if len(out) > 200 {
		out = out[:200] + "..."
	}
	if e.Cause != nil {
		return fmt.Sprintf("malformed model output: %v: %q", e.Cause, out)
	}
	return fmt.Sprintf("malformed model output: %q", out)
}

func (e *MalformedOutputError) Unwrap() error {
	return e.Cause
}
