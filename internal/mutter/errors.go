package mutter

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedState    = errors.New("malformed display state")
	ErrInconsistentState = errors.New("inconsistent display state")
	ErrTransport         = errors.New("display config transport failure")
	ErrRemoteApply       = errors.New("display config rejected")
	ErrStaleSerial       = errors.New("stale display state serial")
)

// MalformedStateError means the state reply cannot be interpreted at all.
type MalformedStateError struct {
	Reason string
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMalformedState, e.Reason)
}

func (e *MalformedStateError) Unwrap() error { return ErrMalformedState }

// InconsistentStateError means a logical monitor points at a monitor the
// same reply does not describe.
type InconsistentStateError struct {
	Connector string
	Reason    string
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInconsistentState, e.Connector, e.Reason)
}

func (e *InconsistentStateError) Unwrap() error { return ErrInconsistentState }

// TransportError wraps a failure to reach or call the compositor.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() []error { return []error{ErrTransport, e.Err} }

// RemoteApplyError carries the compositor's reason for rejecting an apply.
type RemoteApplyError struct {
	Name    string
	Message string
}

func (e *RemoteApplyError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: %s", ErrRemoteApply, e.Name)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrRemoteApply, e.Message, e.Name)
}

func (e *RemoteApplyError) Unwrap() error { return ErrRemoteApply }

// StaleSerialError means the hardware changed between the state query and
// the apply call. The caller has to query and reconcile again.
type StaleSerialError struct {
	Serial  uint32
	Message string
}

func (e *StaleSerialError) Error() string {
	return fmt.Sprintf("%s %d: %s", ErrStaleSerial, e.Serial, e.Message)
}

func (e *StaleSerialError) Unwrap() []error { return []error{ErrStaleSerial, ErrRemoteApply} }
