// Package render prints human-readable summaries for the CLI.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/a9sk/displayctl/internal/models"
	"github.com/a9sk/displayctl/internal/mutter"
	"github.com/a9sk/displayctl/internal/profile"
	"github.com/a9sk/displayctl/internal/reconcile"
	"github.com/a9sk/displayctl/internal/x11"
	"github.com/fatih/color"
)

// modes listed per monitor before collapsing into "... and N more"
const maxModes = 3

var (
	primaryMark = color.New(color.FgHiMagenta)
	okMark      = color.New(color.FgGreen)
	warnMark    = color.New(color.FgYellow)
	errMark     = color.New(color.FgRed)
	nameMark    = color.New(color.Bold)
)

// SetColor forces colour on or off. "auto" leaves fatih/color's terminal
// detection alone.
func SetColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

func primarySuffix(primary bool) string {
	if !primary {
		return ""
	}
	return primaryMark.Sprint(" (primary)")
}

func formatMode(d models.ModeDescriptor) string {
	return fmt.Sprintf("%dx%d@%.2fHz", d.Width, d.Height, d.RefreshRate)
}

func logicalMonitorLine(w io.Writer, indent string, i int, lm models.LogicalMonitor) {
	fmt.Fprintf(w, "%sLogical monitor %d: %d,%d scale %g", indent, i+1, lm.X, lm.Y, lm.Scale)
	if lm.Transform != models.TransformNormal {
		fmt.Fprintf(w, " %s", lm.Transform)
	}
	fmt.Fprintf(w, "%s\n", primarySuffix(lm.Primary))
	for _, a := range lm.Monitors {
		fmt.Fprintf(w, "%s  - %s (%s)\n", indent, a.Connector, formatMode(a.Mode))
	}
}

// Current prints the live inventory the way `current` shows it.
func Current(w io.Writer, inv models.LiveInventory) {
	fmt.Fprintln(w, "Current monitor configuration:")
	fmt.Fprintf(w, "Serial: %d\n", inv.Serial)
	if inv.LayoutMode != models.LayoutModeUnset {
		fmt.Fprintf(w, "Layout mode: %s\n", inv.LayoutMode)
	}

	fmt.Fprintln(w, "\nAvailable monitors:")
	for _, conn := range inv.Connectors {
		mon := inv.Monitors[conn]
		label := nameMark.Sprint(conn)
		if mon.DisplayName != "" {
			label += fmt.Sprintf(" %s", mon.DisplayName)
		}
		if mon.Builtin {
			label += " [builtin]"
		}
		fmt.Fprintf(w, "  %s:\n", label)
		fmt.Fprintf(w, "    Available modes: %d\n", len(mon.Modes))

		shown := 0
		for _, mode := range mon.Modes {
			// always show the current mode even when it is not among the first few
			if shown >= maxModes && !mode.Current {
				continue
			}
			marks := ""
			if mode.Current {
				marks += okMark.Sprint("*")
			}
			if mode.Preferred {
				marks += "+"
			}
			fmt.Fprintf(w, "      %s%s\n", formatMode(mode.Descriptor()), marks)
			shown++
		}
		if len(mon.Modes) > shown {
			fmt.Fprintf(w, "      ... and %d more\n", len(mon.Modes)-shown)
		}
	}

	fmt.Fprintln(w, "\nActive logical monitors:")
	for i, lm := range inv.ActiveLogicalMonitors {
		logicalMonitorLine(w, "  ", i, lm)
	}
}

// Outputs prints the RandR view of the same connectors.
func Outputs(w io.Writer, outputs []x11.Output) {
	fmt.Fprintln(w, "\nX11 RandR outputs:")
	for _, o := range outputs {
		state := errMark.Sprint("disconnected")
		if o.Connected {
			state = okMark.Sprint("connected")
		}
		active := ""
		if o.Active {
			active = " (active)"
		}
		fmt.Fprintf(w, "  %s: %s%s\n", o.Name, state, active)
	}
}

// Profiles prints the `list` output.
func Profiles(w io.Writer, dir string, sums []profile.Summary) {
	if len(sums) == 0 {
		fmt.Fprintf(w, "No configurations found in %s\n", dir)
		return
	}

	fmt.Fprintln(w, "Saved configurations:")
	for _, s := range sums {
		if s.Err != nil {
			fmt.Fprintf(w, "  %s: %s\n", nameMark.Sprint(s.Name), errMark.Sprintf("(error reading file: %v)", s.Err))
			continue
		}
		fmt.Fprintf(w, "  %s: %d monitor(s)\n", nameMark.Sprint(s.Name), s.MonitorCount)
		for i, lm := range s.Configuration.LogicalMonitors {
			logicalMonitorLine(w, "    ", i, lm)
		}
	}
}

// Plan prints what a load would send, used by --dry-run.
func Plan(w io.Writer, cfg models.Configuration, req models.ApplyRequest, method models.ApplyMethod) {
	fmt.Fprintf(w, "Configuration '%s' would apply (method %s, serial %d):\n", cfg.Name, method, req.Serial)
	for i, lm := range req.LogicalMonitors {
		fmt.Fprintf(w, "  Logical monitor %d: %d,%d scale %g", i+1, lm.X, lm.Y, lm.Scale)
		if lm.Transform != models.TransformNormal {
			fmt.Fprintf(w, " %s", lm.Transform)
		}
		fmt.Fprintf(w, "%s\n", primarySuffix(lm.Primary))
		for _, m := range lm.Monitors {
			fmt.Fprintf(w, "    - %s (mode: %s)\n", m.Connector, m.ModeID)
		}
	}
	if req.LayoutMode != models.LayoutModeUnset {
		fmt.Fprintf(w, "  Layout mode: %s\n", req.LayoutMode)
	}
	fmt.Fprintln(w, "\nUse 'load' without --dry-run to apply this configuration.")
}

// Warnings prints refresh-rate substitutions.
func Warnings(w io.Writer, warnings []reconcile.Warning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "%s %s\n", warnMark.Sprint("Warning:"), warn)
	}
}

// Error prints err with whatever extra detail its type carries.
func Error(w io.Writer, err error) {
	var (
		agg   *reconcile.Error
		stale *mutter.StaleSerialError
	)
	switch {
	case errors.As(err, &agg):
		fmt.Fprintf(w, "%s configuration '%s' cannot be applied:\n", errMark.Sprint("Error:"), agg.Profile)
		for _, p := range agg.Problems {
			fmt.Fprintf(w, "  - %s wanted %s for logical monitor %d: %s\n",
				nameMark.Sprint(p.Connector), formatMode(p.Requested), p.LogicalMonitor, errMark.Sprint(p.Reason))
			if len(p.Available) > 0 {
				avail := make([]string, 0, len(p.Available))
				for _, d := range p.Available {
					avail = append(avail, formatMode(d))
				}
				fmt.Fprintf(w, "    available: %s\n", strings.Join(avail, ", "))
			}
		}
	case errors.As(err, &stale):
		fmt.Fprintf(w, "%s the display configuration changed while applying (%v).\n", errMark.Sprint("Error:"), stale)
		fmt.Fprintln(w, "Run the command again to re-read the current state.")
	default:
		fmt.Fprintf(w, "%s %v\n", errMark.Sprint("Error:"), err)
	}
}
