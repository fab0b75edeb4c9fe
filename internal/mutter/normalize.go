package mutter

import (
	"fmt"

	"github.com/a9sk/displayctl/internal/models"
)

// Normalize converts a GetCurrentState reply into a LiveInventory.
// It has no side effects and never retries.
func Normalize(raw RawState) (models.LiveInventory, error) {
	if len(raw.Monitors) == 0 {
		return models.LiveInventory{}, &MalformedStateError{Reason: "no monitors reported"}
	}

	inv := models.LiveInventory{
		Serial:                     raw.Serial,
		Monitors:                   make(map[string]models.Monitor, len(raw.Monitors)),
		Connectors:                 make([]string, 0, len(raw.Monitors)),
		LayoutMode:                 models.LayoutMode(uint32Prop(raw.Properties, propLayoutMode)),
		SupportsChangingLayoutMode: boolProp(raw.Properties, propSupportsChangingLayoutMode),
	}

	for i, rm := range raw.Monitors {
		mon, err := normalizeMonitor(i, rm)
		if err != nil {
			return models.LiveInventory{}, err
		}
		if _, dup := inv.Monitors[mon.Connector]; dup {
			return models.LiveInventory{}, &MalformedStateError{
				Reason: fmt.Sprintf("connector %s reported twice", mon.Connector),
			}
		}
		inv.Monitors[mon.Connector] = mon
		inv.Connectors = append(inv.Connectors, mon.Connector)
	}

	inv.ActiveLogicalMonitors = make([]models.LogicalMonitor, 0, len(raw.LogicalMonitors))
	for _, rlm := range raw.LogicalMonitors {
		lm, err := normalizeLogicalMonitor(rlm, inv.Monitors)
		if err != nil {
			return models.LiveInventory{}, err
		}
		inv.ActiveLogicalMonitors = append(inv.ActiveLogicalMonitors, lm)
	}

	return inv, nil
}

func normalizeMonitor(idx int, rm RawMonitor) (models.Monitor, error) {
	if rm.Spec.Connector == "" {
		return models.Monitor{}, &MalformedStateError{
			Reason: fmt.Sprintf("monitor %d has no connector", idx),
		}
	}
	if len(rm.Modes) == 0 {
		return models.Monitor{}, &MalformedStateError{
			Reason: fmt.Sprintf("monitor %s has no modes", rm.Spec.Connector),
		}
	}

	mon := models.Monitor{
		Connector:   rm.Spec.Connector,
		Vendor:      rm.Spec.Vendor,
		Product:     rm.Spec.Product,
		Serial:      rm.Spec.Serial,
		DisplayName: stringProp(rm.Properties, propDisplayName),
		Builtin:     boolProp(rm.Properties, propIsBuiltin),
		Modes:       make([]models.Mode, 0, len(rm.Modes)),
	}

	current := 0
	for _, raw := range rm.Modes {
		if raw.Width <= 0 || raw.Height <= 0 || raw.RefreshRate <= 0 {
			return models.Monitor{}, &MalformedStateError{
				Reason: fmt.Sprintf("monitor %s mode %q has invalid geometry %dx%d@%g",
					mon.Connector, raw.ID, raw.Width, raw.Height, raw.RefreshRate),
			}
		}
		mode := models.Mode{
			ID:              raw.ID,
			Width:           int(raw.Width),
			Height:          int(raw.Height),
			RefreshRate:     raw.RefreshRate,
			Preferred:       boolProp(raw.Properties, propIsPreferred),
			Current:         boolProp(raw.Properties, propIsCurrent),
			PreferredScale:  raw.PreferredScale,
			SupportedScales: raw.SupportedScales,
		}
		if mode.Current {
			current++
		}
		mon.Modes = append(mon.Modes, mode)
	}
	if current > 1 {
		return models.Monitor{}, &MalformedStateError{
			Reason: fmt.Sprintf("monitor %s has %d current modes", mon.Connector, current),
		}
	}

	return mon, nil
}

func normalizeLogicalMonitor(rlm RawLogicalMonitor, monitors map[string]models.Monitor) (models.LogicalMonitor, error) {
	if len(rlm.Monitors) == 0 {
		return models.LogicalMonitor{}, &MalformedStateError{
			Reason: fmt.Sprintf("logical monitor at %d,%d has no monitors", rlm.X, rlm.Y),
		}
	}
	transform := models.Transform(rlm.Transform)
	if !transform.Valid() {
		return models.LogicalMonitor{}, &MalformedStateError{
			Reason: fmt.Sprintf("logical monitor at %d,%d has unknown transform %d", rlm.X, rlm.Y, rlm.Transform),
		}
	}

	lm := models.LogicalMonitor{
		X:         int(rlm.X),
		Y:         int(rlm.Y),
		Scale:     rlm.Scale,
		Transform: transform,
		Primary:   rlm.Primary,
		Monitors:  make([]models.MonitorAssignment, 0, len(rlm.Monitors)),
	}

	for _, spec := range rlm.Monitors {
		mon, ok := monitors[spec.Connector]
		if !ok {
			return models.LogicalMonitor{}, &InconsistentStateError{
				Connector: spec.Connector,
				Reason:    "logical monitor references a connector missing from the monitor list",
			}
		}
		mode, ok := mon.CurrentMode()
		if !ok {
			return models.LogicalMonitor{}, &InconsistentStateError{
				Connector: spec.Connector,
				Reason:    "monitor is in use but has no current mode",
			}
		}
		lm.Monitors = append(lm.Monitors, models.MonitorAssignment{
			Connector: spec.Connector,
			Mode:      mode.Descriptor(),
		})
	}

	return lm, nil
}
