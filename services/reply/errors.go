package reply

import "fmt"

// UnparseableReplyError means the extraction oracle's output was not a valid
// timestamp. The negotiation stays proposed; deciding when to give up and
// abandon is the caller's policy.
type UnparseableReplyError struct {
	ThreadID string
	Raw      string
	Err      error
}

func (e *UnparseableReplyError) Error() string {
	return fmt.Sprintf("could not parse reply time for thread %s from %q: %v", e.ThreadID, e.Raw, e.Err)
}

func (e *UnparseableReplyError) Unwrap() error { return e.Err }
