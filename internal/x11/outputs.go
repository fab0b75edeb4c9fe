package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil"
)

// Output is one RandR output as the X server sees it. Under GNOME on Xorg
// the names match Mutter's connectors; under Wayland they come from
// XWayland and usually do not.
type Output struct {
	Name      string
	Connected bool
	Active    bool // driven by a CRTC
}

// Outputs lists RandR outputs on the default display.
//
// This is best-effort: callers should treat errors as "no X server".
func Outputs() ([]Output, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connecting to X11: %w", err)
	}
	defer xu.Conn().Close()

	if err := randr.Init(xu.Conn()); err != nil {
		return nil, fmt.Errorf("initializing RandR: %w", err)
	}

	res, err := randr.GetScreenResourcesCurrent(xu.Conn(), xu.RootWin()).Reply()
	if err != nil {
		return nil, fmt.Errorf("reading screen resources: %w", err)
	}

	out := make([]Output, 0, len(res.Outputs))
	for _, id := range res.Outputs {
		info, err := randr.GetOutputInfo(xu.Conn(), id, res.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("reading output 0x%x: %w", uint32(id), err)
		}
		out = append(out, fromInfo(info))
	}
	return out, nil
}

func fromInfo(info *randr.GetOutputInfoReply) Output {
	return Output{
		Name:      string(info.Name),
		Connected: info.Connection == randr.ConnectionConnected,
		Active:    info.Crtc != 0,
	}
}
