package models

// Mode is one display timing a monitor supports.
// IDs are only meaningful inside the snapshot they came from.
type Mode struct {
	ID              string    `json:"id"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	RefreshRate     float64   `json:"refresh_rate"`
	Preferred       bool      `json:"preferred,omitempty"`
	Current         bool      `json:"current,omitempty"`
	PreferredScale  float64   `json:"preferred_scale,omitempty"`
	SupportedScales []float64 `json:"supported_scales,omitempty"`
}

// Descriptor returns the part of the mode that survives across snapshots.
func (m Mode) Descriptor() ModeDescriptor {
	return ModeDescriptor{Width: m.Width, Height: m.Height, RefreshRate: m.RefreshRate}
}

// ModeDescriptor identifies a mode by geometry and refresh rate instead of id.
type ModeDescriptor struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	RefreshRate float64 `json:"refresh_rate"`
}

// Monitor is one physical output as reported by the compositor.
type Monitor struct {
	Connector   string `json:"connector"` // e.g. "DP-1", "eDP-1", "HDMI-1"
	Vendor      string `json:"vendor,omitempty"`
	Product     string `json:"product,omitempty"`
	Serial      string `json:"serial,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Builtin     bool   `json:"builtin,omitempty"`
	Modes       []Mode `json:"modes"` // server preference order
}

// CurrentMode returns the mode flagged current, if any.
func (m Monitor) CurrentMode() (Mode, bool) {
	for _, mode := range m.Modes {
		if mode.Current {
			return mode, true
		}
	}
	return Mode{}, false
}

// MonitorAssignment ties a connector to the mode it should run in.
type MonitorAssignment struct {
	Connector string         `json:"connector"`
	Mode      ModeDescriptor `json:"mode"`
}

// LogicalMonitor is a compositor-level region. More than one assignment
// means the outputs mirror each other.
type LogicalMonitor struct {
	X         int                 `json:"x"`
	Y         int                 `json:"y"`
	Scale     float64             `json:"scale"`
	Transform Transform           `json:"transform"`
	Primary   bool                `json:"primary"`
	Monitors  []MonitorAssignment `json:"monitors"`
}

// Configuration is a named, persisted layout.
type Configuration struct {
	Name            string           `json:"name"`
	LogicalMonitors []LogicalMonitor `json:"logical_monitors"`
	// Serial is the live serial at save time, kept for diagnostics only.
	Serial     uint32     `json:"serial"`
	LayoutMode LayoutMode `json:"layout_mode,omitempty"`
}

// Connectors returns every connector the configuration references, in order.
func (c Configuration) Connectors() []string {
	var out []string
	for _, lm := range c.LogicalMonitors {
		for _, a := range lm.Monitors {
			out = append(out, a.Connector)
		}
	}
	return out
}

// LiveInventory is rebuilt from a fresh state query every time it is needed.
type LiveInventory struct {
	Serial                     uint32             `json:"serial"`
	Monitors                   map[string]Monitor `json:"monitors"`
	Connectors                 []string           `json:"connectors"` // server order
	ActiveLogicalMonitors      []LogicalMonitor   `json:"logical_monitors"`
	LayoutMode                 LayoutMode         `json:"layout_mode,omitempty"`
	SupportsChangingLayoutMode bool               `json:"supports_changing_layout_mode,omitempty"`
}

// Capture turns the active layout into a Configuration named name.
func (inv LiveInventory) Capture(name string) Configuration {
	lms := make([]LogicalMonitor, 0, len(inv.ActiveLogicalMonitors))
	for _, lm := range inv.ActiveLogicalMonitors {
		cp := lm
		cp.Monitors = append([]MonitorAssignment(nil), lm.Monitors...)
		lms = append(lms, cp)
	}
	return Configuration{
		Name:            name,
		LogicalMonitors: lms,
		Serial:          inv.Serial,
		LayoutMode:      inv.LayoutMode,
	}
}

// ApplyRequest is the payload for ApplyMonitorsConfig.
type ApplyRequest struct {
	Serial          uint32                  `json:"serial"`
	LogicalMonitors []LogicalMonitorRequest `json:"logical_monitors"`
	// LayoutMode is sent only when non-zero.
	LayoutMode LayoutMode `json:"layout_mode,omitempty"`
}

// LogicalMonitorRequest is one logical monitor with resolved mode ids.
type LogicalMonitorRequest struct {
	X         int              `json:"x"`
	Y         int              `json:"y"`
	Scale     float64          `json:"scale"`
	Transform Transform        `json:"transform"`
	Primary   bool             `json:"primary"`
	Monitors  []MonitorRequest `json:"monitors"`
}

// MonitorRequest selects a mode id for a connector.
type MonitorRequest struct {
	Connector string `json:"connector"`
	ModeID    string `json:"mode_id"`
}
