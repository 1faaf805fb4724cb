package utils

import (
	"context"
	"errors"
	"fmt"
)

// ExternalTimeoutError marks a collaborator call that exceeded its deadline.
// The op names the call site so the surrounding step error stays meaningful.
type ExternalTimeoutError struct {
	Op  string
	Err error
}

func (e *ExternalTimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *ExternalTimeoutError) Unwrap() error { return e.Err }

// WrapTimeout converts a context deadline failure into an
// ExternalTimeoutError; any other error passes through unchanged.
func WrapTimeout(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ExternalTimeoutError{Op: op, Err: err}
	}
	return err
}
