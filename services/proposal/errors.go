package proposal

import "fmt"

// Each saga step has its own error type so callers can tell exactly how far
// the run got, and in particular whether mail already left the building.

// LabelInitError means the classification label could not be looked up or
// created. Nothing was sent.
type LabelInitError struct {
	Err error
}

func (e *LabelInitError) Error() string { return fmt.Sprintf("label init error: %v", e.Err) }
func (e *LabelInitError) Unwrap() error { return e.Err }

// DraftError means the composition oracle failed. Nothing was sent.
type DraftError struct {
	Err error
}

func (e *DraftError) Error() string { return fmt.Sprintf("draft error: %v", e.Err) }
func (e *DraftError) Unwrap() error { return e.Err }

// SendError means the transport rejected the message. Nothing was delivered,
// but retrying is only safe because of that.
type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("send error: %v", e.Err) }
func (e *SendError) Unwrap() error { return e.Err }

// LabelApplyError means the sent message could not be tagged. The mail is
// already delivered; correlation runs on the thread identity, so this
// degrades the run instead of failing it.
type LabelApplyError struct {
	MessageID string
	Err       error
}

func (e *LabelApplyError) Error() string {
	return fmt.Sprintf("failed to label message %s: %v", e.MessageID, e.Err)
}
func (e *LabelApplyError) Unwrap() error { return e.Err }

// PersistError is the severe partial failure: mail was delivered but no
// negotiation record exists to correlate the reply. It carries the identities
// a compensating job needs to re-create the record out of band.
type PersistError struct {
	ThreadID  string
	MessageID string
	Err       error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("mail sent (thread %s, message %s) but record not persisted: %v",
		e.ThreadID, e.MessageID, e.Err)
}
func (e *PersistError) Unwrap() error { return e.Err }
