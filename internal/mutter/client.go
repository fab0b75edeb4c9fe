package mutter

import (
	"errors"
	"strings"

	"github.com/a9sk/displayctl/internal/models"
	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.gnome.Mutter.DisplayConfig"
	objectPath = dbus.ObjectPath("/org/gnome/Mutter/DisplayConfig")
	iface      = "org.gnome.Mutter.DisplayConfig"
)

// Client talks to the compositor's DisplayConfig service on the session bus.
type Client struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// Connect opens a private session bus connection.
func Connect() (*Client, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, &TransportError{Op: "connecting to session bus", Err: err}
	}
	return &Client{conn: conn, obj: conn.Object(busName, objectPath)}, nil
}

// Close releases the bus connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// GetCurrentState returns the state reply unmodified.
func (c *Client) GetCurrentState() (RawState, error) {
	var raw RawState
	call := c.obj.Call(iface+".GetCurrentState", 0)
	if call.Err != nil {
		return RawState{}, &TransportError{Op: "GetCurrentState", Err: call.Err}
	}
	if err := call.Store(&raw.Serial, &raw.Monitors, &raw.LogicalMonitors, &raw.Properties); err != nil {
		return RawState{}, &MalformedStateError{Reason: "decoding GetCurrentState reply: " + err.Error()}
	}
	return raw, nil
}

// ApplyMonitorsConfig sends req with the given method. Rejections are
// returned as *RemoteApplyError or *StaleSerialError and never retried.
func (c *Client) ApplyMonitorsConfig(req models.ApplyRequest, method models.ApplyMethod) error {
	lms := encodeApplyRequest(req)
	props := applyProperties(req)

	call := c.obj.Call(iface+".ApplyMonitorsConfig", 0, req.Serial, uint32(method), lms, props)
	if call.Err == nil {
		return nil
	}
	return classifyApplyError(req.Serial, call.Err)
}

func encodeApplyRequest(req models.ApplyRequest) []applyLogicalMonitor {
	lms := make([]applyLogicalMonitor, 0, len(req.LogicalMonitors))
	for _, lm := range req.LogicalMonitors {
		mons := make([]applyMonitor, 0, len(lm.Monitors))
		for _, m := range lm.Monitors {
			mons = append(mons, applyMonitor{
				Connector:  m.Connector,
				ModeID:     m.ModeID,
				Properties: map[string]dbus.Variant{},
			})
		}
		lms = append(lms, applyLogicalMonitor{
			X:         int32(lm.X),
			Y:         int32(lm.Y),
			Scale:     lm.Scale,
			Transform: uint32(lm.Transform),
			Primary:   lm.Primary,
			Monitors:  mons,
		})
	}
	return lms
}

func applyProperties(req models.ApplyRequest) map[string]dbus.Variant {
	props := map[string]dbus.Variant{}
	if req.LayoutMode != models.LayoutModeUnset {
		props[propLayoutMode] = dbus.MakeVariant(uint32(req.LayoutMode))
	}
	return props
}

// classifyApplyError maps a D-Bus error reply onto the error taxonomy.
// Mutter answers a serial mismatch with AccessDenied and a message about
// stale information.
func classifyApplyError(serial uint32, err error) error {
	var dbusErr dbus.Error
	var dbusErrPtr *dbus.Error
	switch {
	case errors.As(err, &dbusErr):
	case errors.As(err, &dbusErrPtr) && dbusErrPtr != nil:
		dbusErr = *dbusErrPtr
	default:
		return &TransportError{Op: "ApplyMonitorsConfig", Err: err}
	}

	msg := ""
	if len(dbusErr.Body) > 0 {
		if s, ok := dbusErr.Body[0].(string); ok {
			msg = s
		}
	}
	if strings.Contains(strings.ToLower(msg), "stale") {
		return &StaleSerialError{Serial: serial, Message: msg}
	}
	return &RemoteApplyError{Name: dbusErr.Name, Message: msg}
}
