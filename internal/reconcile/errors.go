package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/a9sk/displayctl/internal/models"
)

var (
	ErrMissingMonitor     = errors.New("monitor unavailable")
	ErrEmptyConfiguration = errors.New("configuration has no logical monitors")
)

// Reason says why a stored monitor could not be matched.
type Reason int

const (
	ReasonDisconnected Reason = iota
	ReasonNoMatchingResolution
)

func (r Reason) String() string {
	switch r {
	case ReasonDisconnected:
		return "not connected"
	case ReasonNoMatchingResolution:
		return "no matching resolution"
	default:
		return "unknown"
	}
}

// MissingMonitorError is one unsatisfied (logical monitor, connector) pair.
type MissingMonitorError struct {
	LogicalMonitor int // 1-based position in the profile
	Connector      string
	Requested      models.ModeDescriptor
	Reason         Reason
	Available      []models.ModeDescriptor // set for ReasonNoMatchingResolution
}

func (e *MissingMonitorError) Error() string {
	switch e.Reason {
	case ReasonNoMatchingResolution:
		return fmt.Sprintf("%s (logical monitor %d): no %dx%d mode among %d available",
			e.Connector, e.LogicalMonitor, e.Requested.Width, e.Requested.Height, len(e.Available))
	default:
		return fmt.Sprintf("%s (logical monitor %d): %s", e.Connector, e.LogicalMonitor, e.Reason)
	}
}

func (e *MissingMonitorError) Unwrap() error { return ErrMissingMonitor }

// Error aggregates every MissingMonitorError found in one reconciliation.
type Error struct {
	Profile  string
	Problems []*MissingMonitorError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, p.Error())
	}
	return fmt.Sprintf("profile %s cannot be applied: %s", e.Profile, strings.Join(parts, "; "))
}

// Unwrap exposes each problem to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	out := make([]error, 0, len(e.Problems))
	for _, p := range e.Problems {
		out = append(out, p)
	}
	return out
}

// Connectors lists the unsatisfied connectors in profile order.
func (e *Error) Connectors() []string {
	out := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		out = append(out, p.Connector)
	}
	return out
}
