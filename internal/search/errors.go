package search

import (
	"fmt"
	"time"
)

// TimeoutError indicates a search call exceeded its configured bound
type TimeoutError struct {
	Query   string
	Timeout time.Duration
	Cause   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("search query %q timed out after %s", e.Query, e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
