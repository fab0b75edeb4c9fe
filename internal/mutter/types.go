package mutter

import "github.com/godbus/dbus/v5"

// RawState is the GetCurrentState reply, field for field:
//
//	(u serial, a((ssss)a(siiddada{sv})a{sv}) monitors,
//	 a(iiduba(ssss)a{sv}) logical_monitors, a{sv} properties)
type RawState struct {
	Serial          uint32
	Monitors        []RawMonitor
	LogicalMonitors []RawLogicalMonitor
	Properties      map[string]dbus.Variant
}

// RawMonitorSpec identifies a monitor: (connector, vendor, product, serial).
type RawMonitorSpec struct {
	Connector string
	Vendor    string
	Product   string
	Serial    string
}

// RawMonitor is ((ssss) a(siiddada{sv}) a{sv}).
type RawMonitor struct {
	Spec       RawMonitorSpec
	Modes      []RawMode
	Properties map[string]dbus.Variant
}

// RawMode is (s id, i width, i height, d refresh, d preferred scale,
// ad supported scales, a{sv} properties).
type RawMode struct {
	ID              string
	Width           int32
	Height          int32
	RefreshRate     float64
	PreferredScale  float64
	SupportedScales []float64
	Properties      map[string]dbus.Variant
}

// RawLogicalMonitor is (i x, i y, d scale, u transform, b primary,
// a(ssss) monitors, a{sv} properties).
type RawLogicalMonitor struct {
	X          int32
	Y          int32
	Scale      float64
	Transform  uint32
	Primary    bool
	Monitors   []RawMonitorSpec
	Properties map[string]dbus.Variant
}

// property keys used by the compositor
const (
	propIsCurrent                  = "is-current"
	propIsPreferred                = "is-preferred"
	propDisplayName                = "display-name"
	propIsBuiltin                  = "is-builtin"
	propLayoutMode                 = "layout-mode"
	propSupportsChangingLayoutMode = "supports-changing-layout-mode"
)

// applyMonitor is (s connector, s mode id, a{sv} properties).
type applyMonitor struct {
	Connector  string
	ModeID     string
	Properties map[string]dbus.Variant
}

// applyLogicalMonitor is (i x, i y, d scale, u transform, b primary, a(ssa{sv})).
type applyLogicalMonitor struct {
	X         int32
	Y         int32
	Scale     float64
	Transform uint32
	Primary   bool
	Monitors  []applyMonitor
}

func boolProp(props map[string]dbus.Variant, key string) bool {
	v, ok := props[key]
	if !ok {
		return false
	}
	b, _ := v.Value().(bool)
	return b
}

func stringProp(props map[string]dbus.Variant, key string) string {
	v, ok := props[key]
	if !ok {
		return ""
	}
	s, _ := v.Value().(string)
	return s
}

func uint32Prop(props map[string]dbus.Variant, key string) uint32 {
	v, ok := props[key]
	if !ok {
		return 0
	}
	u, _ := v.Value().(uint32)
	return u
}
