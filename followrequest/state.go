package followrequest

import (
	"github.com/anyproto/any-share/capability"
	"github.com/anyproto/any-share/identity"
)

// State of an outgoing follow request.
type State int

const (
	StateStart State = iota
	StateSharingKeyIssued
	StateDirectoryUpdated
	StateRequestSent
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateSharingKeyIssued:
		return "sharingKeyIssued"
	case StateDirectoryUpdated:
		return "directoryUpdated"
	case StateRequestSent:
		return "requestSent"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Result describes how far an outgoing follow request got. On failure
// Reached is the last state completed before the error.
type Result struct {
	OpId       string
	Target     identity.PublicIdentity
	Sharing    identity.PublicIdentity
	Capability *capability.Capability
	State      State
	Reached    State
	Err        error
}

// Advance records that state was reached.
func (r *Result) Advance(state State) {
	r.State = state
	r.Reached = state
}

// Fail moves the result to StateFailed keeping the last reached state.
func (r *Result) Fail(err error) {
	r.State = StateFailed
	r.Err = err
}
