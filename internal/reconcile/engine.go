// Package reconcile matches a stored layout against the monitors that are
// connected right now and builds the ApplyMonitorsConfig payload for it.
package reconcile

import (
	"fmt"
	"math"

	"github.com/a9sk/displayctl/internal/models"
)

// RefreshEpsilon absorbs float jitter between snapshots of the same mode.
const RefreshEpsilon = 0.01

// Warning is a non-fatal substitution made while resolving modes.
type Warning struct {
	LogicalMonitor int
	Connector      string
	Requested      models.ModeDescriptor
	Chosen         models.ModeDescriptor
	ModeID         string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %.3f Hz not available at %dx%d, using %.3f Hz (mode %s)",
		w.Connector, w.Requested.RefreshRate, w.Requested.Width, w.Requested.Height,
		w.Chosen.RefreshRate, w.ModeID)
}

// Reconcile resolves target against live. It either returns a complete
// request or an *Error naming every connector that could not be satisfied;
// partial requests are never produced.
func Reconcile(target models.Configuration, live models.LiveInventory) (models.ApplyRequest, []Warning, error) {
	if len(target.LogicalMonitors) == 0 {
		return models.ApplyRequest{}, nil, fmt.Errorf("profile %s: %w", target.Name, ErrEmptyConfiguration)
	}

	var (
		problems []*MissingMonitorError
		warnings []Warning
	)
	req := models.ApplyRequest{
		Serial:          live.Serial,
		LogicalMonitors: make([]models.LogicalMonitorRequest, 0, len(target.LogicalMonitors)),
	}

	for i, lm := range target.LogicalMonitors {
		pos := i + 1
		out := models.LogicalMonitorRequest{
			X:         lm.X,
			Y:         lm.Y,
			Scale:     lm.Scale,
			Transform: lm.Transform,
			Primary:   lm.Primary,
			Monitors:  make([]models.MonitorRequest, 0, len(lm.Monitors)),
		}

		for _, a := range lm.Monitors {
			mon, ok := live.Monitors[a.Connector]
			if !ok {
				problems = append(problems, &MissingMonitorError{
					LogicalMonitor: pos,
					Connector:      a.Connector,
					Requested:      a.Mode,
					Reason:         ReasonDisconnected,
				})
				continue
			}

			mode, tier := selectMode(mon.Modes, a.Mode)
			switch tier {
			case tierNone:
				problems = append(problems, &MissingMonitorError{
					LogicalMonitor: pos,
					Connector:      a.Connector,
					Requested:      a.Mode,
					Reason:         ReasonNoMatchingResolution,
					Available:      descriptors(mon.Modes),
				})
				continue
			case tierResolution:
				warnings = append(warnings, Warning{
					LogicalMonitor: pos,
					Connector:      a.Connector,
					Requested:      a.Mode,
					Chosen:         mode.Descriptor(),
					ModeID:         mode.ID,
				})
			}

			out.Monitors = append(out.Monitors, models.MonitorRequest{
				Connector: a.Connector,
				ModeID:    mode.ID,
			})
		}

		req.LogicalMonitors = append(req.LogicalMonitors, out)
	}

	if len(problems) > 0 {
		return models.ApplyRequest{}, nil, &Error{Profile: target.Name, Problems: problems}
	}

	if target.LayoutMode != models.LayoutModeUnset && live.SupportsChangingLayoutMode {
		req.LayoutMode = target.LayoutMode
	}

	return req, warnings, nil
}

type matchTier int

const (
	tierNone matchTier = iota
	tierResolution
	tierExact
)

// selectMode picks a mode for want from modes: the same geometry with the
// closest refresh inside RefreshEpsilon first, then same geometry preferring
// the preferred mode and otherwise the highest refresh rate. Ties go to the
// mode listed first by the server.
func selectMode(modes []models.Mode, want models.ModeDescriptor) (models.Mode, matchTier) {
	var (
		best  models.Mode
		found bool
		diff  float64
	)
	// closest refresh inside the epsilon; earlier modes win ties
	for _, m := range modes {
		if m.Width != want.Width || m.Height != want.Height {
			continue
		}
		d := math.Abs(m.RefreshRate - want.RefreshRate)
		if d <= RefreshEpsilon && (!found || d < diff) {
			best, found, diff = m, true, d
		}
	}
	if found {
		return best, tierExact
	}

	for _, m := range modes {
		if m.Width != want.Width || m.Height != want.Height {
			continue
		}
		if m.Preferred {
			return m, tierResolution
		}
		if !found || m.RefreshRate > best.RefreshRate {
			best, found = m, true
		}
	}
	if found {
		return best, tierResolution
	}
	return models.Mode{}, tierNone
}

func descriptors(modes []models.Mode) []models.ModeDescriptor {
	out := make([]models.ModeDescriptor, 0, len(modes))
	for _, m := range modes {
		out = append(out, m.Descriptor())
	}
	return out
}
