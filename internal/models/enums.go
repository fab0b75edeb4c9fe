package models

import "fmt"

// Transform is the rotation/reflection of a logical monitor. Values match
// the D-Bus wire encoding.
type Transform uint32

const (
	TransformNormal Transform = iota
	TransformRotate90
	TransformRotate180
	TransformRotate270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

var transformNames = [...]string{
	TransformNormal:     "normal",
	TransformRotate90:   "rotate-90",
	TransformRotate180:  "rotate-180",
	TransformRotate270:  "rotate-270",
	TransformFlipped:    "flipped",
	TransformFlipped90:  "flipped-90",
	TransformFlipped180: "flipped-180",
	TransformFlipped270: "flipped-270",
}

// Valid reports whether t is one of the eight known transforms.
func (t Transform) Valid() bool {
	return int(t) < len(transformNames)
}

func (t Transform) String() string {
	if !t.Valid() {
		return fmt.Sprintf("transform(%d)", uint32(t))
	}
	return transformNames[t]
}

// ParseTransform maps a transform name back to its value.
func ParseTransform(s string) (Transform, error) {
	for i, name := range transformNames {
		if name == s {
			return Transform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown transform %q", s)
}

func (t Transform) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid transform %d", uint32(t))
	}
	return []byte(t.String()), nil
}

func (t *Transform) UnmarshalText(b []byte) error {
	v, err := ParseTransform(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// ApplyMethod is the "method" argument of ApplyMonitorsConfig. The numeric
// values are wire values and carry no ordering.
type ApplyMethod uint32

const (
	MethodVerify     ApplyMethod = 0 // validate only
	MethodTemporary  ApplyMethod = 1 // until logout, may be reverted
	MethodPersistent ApplyMethod = 2 // stored in monitors.xml by the compositor
)

func (m ApplyMethod) String() string {
	switch m {
	case MethodVerify:
		return "verify"
	case MethodTemporary:
		return "temporary"
	case MethodPersistent:
		return "persistent"
	default:
		return fmt.Sprintf("method(%d)", uint32(m))
	}
}

// LayoutMode is the compositor-wide "layout-mode" property.
type LayoutMode uint32

const (
	LayoutModeUnset    LayoutMode = 0
	LayoutModeLogical  LayoutMode = 1
	LayoutModePhysical LayoutMode = 2
)

func (l LayoutMode) String() string {
	switch l {
	case LayoutModeUnset:
		return ""
	case LayoutModeLogical:
		return "logical"
	case LayoutModePhysical:
		return "physical"
	default:
		return fmt.Sprintf("layout-mode(%d)", uint32(l))
	}
}

// ParseLayoutMode accepts "", "logical" and "physical".
func ParseLayoutMode(s string) (LayoutMode, error) {
	switch s {
	case "":
		return LayoutModeUnset, nil
	case "logical":
		return LayoutModeLogical, nil
	case "physical":
		return LayoutModePhysical, nil
	}
	return 0, fmt.Errorf("unknown layout mode %q", s)
}
