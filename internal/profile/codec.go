package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/a9sk/displayctl/internal/models"
)

// Document is the on-disk shape of a profile. Monitors are stored by
// connector and mode geometry, never by mode id.
type Document struct {
	Name            string                   `json:"name"`
	Serial          uint32                   `json:"serial"`
	LayoutMode      string                   `json:"layoutMode,omitempty"`
	LogicalMonitors []LogicalMonitorDocument `json:"logicalMonitors"`
}

// LogicalMonitorDocument uses pointers so missing fields can be told apart
// from zero values.
type LogicalMonitorDocument struct {
	X         *int              `json:"x"`
	Y         *int              `json:"y"`
	Scale     *float64          `json:"scale"`
	Transform string            `json:"transform,omitempty"`
	Primary   bool              `json:"primary"`
	Monitors  []MonitorDocument `json:"monitors"`
}

// MonitorDocument is a connector plus the mode it should use.
type MonitorDocument struct {
	Connector   string  `json:"connector"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	RefreshRate float64 `json:"refreshRate"`
}

var nameRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateName reports whether name can be used as a profile file name.
func ValidateName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("profile name %q must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", name)
	}
	return nil
}

// Decode checks doc against the profile invariants and converts it.
// Every violation is reported, not only the first.
func Decode(doc Document) (models.Configuration, error) {
	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if doc.Name == "" {
		addf("missing name")
	} else if err := ValidateName(doc.Name); err != nil {
		addf("%v", err)
	}

	layoutMode, err := models.ParseLayoutMode(doc.LayoutMode)
	if err != nil {
		addf("%v", err)
	}

	if len(doc.LogicalMonitors) == 0 {
		addf("no logical monitors")
	}

	cfg := models.Configuration{
		Name:            doc.Name,
		Serial:          doc.Serial,
		LayoutMode:      layoutMode,
		LogicalMonitors: make([]models.LogicalMonitor, 0, len(doc.LogicalMonitors)),
	}

	seen := make(map[string]int)
	primaries := 0
	for i, ld := range doc.LogicalMonitors {
		n := i + 1
		lm := models.LogicalMonitor{Primary: ld.Primary}

		if ld.X == nil {
			addf("logical monitor %d: missing x", n)
		} else {
			lm.X = *ld.X
		}
		if ld.Y == nil {
			addf("logical monitor %d: missing y", n)
		} else {
			lm.Y = *ld.Y
		}
		switch {
		case ld.Scale == nil:
			addf("logical monitor %d: missing scale", n)
		case *ld.Scale <= 0:
			addf("logical monitor %d: scale %g must be positive", n, *ld.Scale)
		default:
			lm.Scale = *ld.Scale
		}

		if ld.Transform != "" {
			tr, err := models.ParseTransform(ld.Transform)
			if err != nil {
				addf("logical monitor %d: %v", n, err)
			}
			lm.Transform = tr
		}

		if ld.Primary {
			primaries++
		}

		if len(ld.Monitors) == 0 {
			addf("logical monitor %d: missing monitors", n)
		}
		lm.Monitors = make([]models.MonitorAssignment, 0, len(ld.Monitors))
		for _, md := range ld.Monitors {
			if md.Connector == "" {
				addf("logical monitor %d: monitor without connector", n)
				continue
			}
			if prev, dup := seen[md.Connector]; dup {
				addf("connector %s used by logical monitors %d and %d", md.Connector, prev, n)
			} else {
				seen[md.Connector] = n
			}
			if md.Width <= 0 || md.Height <= 0 || md.RefreshRate <= 0 {
				addf("logical monitor %d: %s has invalid mode %dx%d@%g",
					n, md.Connector, md.Width, md.Height, md.RefreshRate)
			}
			lm.Monitors = append(lm.Monitors, models.MonitorAssignment{
				Connector: md.Connector,
				Mode: models.ModeDescriptor{
					Width:       md.Width,
					Height:      md.Height,
					RefreshRate: md.RefreshRate,
				},
			})
		}

		cfg.LogicalMonitors = append(cfg.LogicalMonitors, lm)
	}

	if primaries > 1 {
		addf("%d logical monitors marked primary", primaries)
	}

	if len(problems) > 0 {
		return models.Configuration{}, &InvalidProfileError{Name: doc.Name, Problems: problems}
	}
	return cfg, nil
}

// Encode converts a configuration into its document form. It does not
// validate: configurations built in-process are valid by construction.
func Encode(cfg models.Configuration) Document {
	doc := Document{
		Name:            cfg.Name,
		Serial:          cfg.Serial,
		LayoutMode:      cfg.LayoutMode.String(),
		LogicalMonitors: make([]LogicalMonitorDocument, 0, len(cfg.LogicalMonitors)),
	}
	for _, lm := range cfg.LogicalMonitors {
		x, y, scale := lm.X, lm.Y, lm.Scale
		ld := LogicalMonitorDocument{
			X:         &x,
			Y:         &y,
			Scale:     &scale,
			Transform: lm.Transform.String(),
			Primary:   lm.Primary,
			Monitors:  make([]MonitorDocument, 0, len(lm.Monitors)),
		}
		for _, a := range lm.Monitors {
			ld.Monitors = append(ld.Monitors, MonitorDocument{
				Connector:   a.Connector,
				Width:       a.Mode.Width,
				Height:      a.Mode.Height,
				RefreshRate: a.Mode.RefreshRate,
			})
		}
		doc.LogicalMonitors = append(doc.LogicalMonitors, ld)
	}
	return doc
}

// Marshal encodes cfg as indented JSON.
func Marshal(cfg models.Configuration) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Encode(cfg)); err != nil {
		return nil, fmt.Errorf("encoding profile %s: %w", cfg.Name, err)
	}
	return buf.Bytes(), nil
}

// Unmarshal parses and decodes a stored profile. JSON syntax errors are
// reported as *InvalidProfileError too.
func Unmarshal(data []byte) (models.Configuration, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return models.Configuration{}, &InvalidProfileError{Problems: []string{err.Error()}}
	}
	return Decode(doc)
}
