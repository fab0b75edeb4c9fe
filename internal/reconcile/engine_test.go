package reconcile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/a9sk/displayctl/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mode(w, h int, hz float64) models.Mode {
	return models.Mode{ID: fmt.Sprintf("%dx%d@%.3f", w, h, hz), Width: w, Height: h, RefreshRate: hz}
}

func inventory(serial uint32, monitors ...models.Monitor) models.LiveInventory {
	inv := models.LiveInventory{Serial: serial, Monitors: map[string]models.Monitor{}}
	for _, m := range monitors {
		inv.Monitors[m.Connector] = m
		inv.Connectors = append(inv.Connectors, m.Connector)
	}
	return inv
}

func single(connector string, w, h int, hz float64) models.Configuration {
	return models.Configuration{
		Name: "single",
		LogicalMonitors: []models.LogicalMonitor{
			{
				X: 0, Y: 0, Scale: 1.0, Primary: true,
				Monitors: []models.MonitorAssignment{
					{Connector: connector, Mode: models.ModeDescriptor{Width: w, Height: h, RefreshRate: hz}},
				},
			},
		},
	}
}

func TestReconcile_ExactMatch(t *testing.T) {
	live := inventory(11, models.Monitor{
		Connector: "DP-1",
		Modes:     []models.Mode{mode(1920, 1080, 59.9), mode(1920, 1080, 60.0)},
	})

	req, warnings, err := Reconcile(single("DP-1", 1920, 1080, 60.0), live)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, uint32(11), req.Serial)
	require.Len(t, req.LogicalMonitors, 1)
	lm := req.LogicalMonitors[0]
	assert.True(t, lm.Primary)
	assert.Equal(t, 1.0, lm.Scale)
	assert.Equal(t, []models.MonitorRequest{{Connector: "DP-1", ModeID: "1920x1080@60.000"}}, lm.Monitors)
}

func TestReconcile_RefreshJitterWithinEpsilon(t *testing.T) {
	live := inventory(1, models.Monitor{
		Connector: "DP-1",
		Modes:     []models.Mode{mode(2560, 1440, 143.998), mode(2560, 1440, 59.951)},
	})

	req, warnings, err := Reconcile(single("DP-1", 2560, 1440, 144.0), live)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "2560x1440@143.998", req.LogicalMonitors[0].Monitors[0].ModeID)
}

func TestReconcile_ClosestRefreshWithinEpsilon(t *testing.T) {
	t.Run("exact mode listed after a near one", func(t *testing.T) {
		live := inventory(1, models.Monitor{
			Connector: "DP-1",
			Modes:     []models.Mode{mode(1920, 1080, 60.008), mode(1920, 1080, 60.0)},
		})

		req, warnings, err := Reconcile(single("DP-1", 1920, 1080, 60.0), live)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, "1920x1080@60.000", req.LogicalMonitors[0].Monitors[0].ModeID)
	})

	t.Run("equal distance keeps server order", func(t *testing.T) {
		first, second := mode(1920, 1080, 60.004), mode(1920, 1080, 60.004)
		first.ID, second.ID = "first", "second"
		live := inventory(1, models.Monitor{
			Connector: "DP-1",
			Modes:     []models.Mode{first, second},
		})

		req, warnings, err := Reconcile(single("DP-1", 1920, 1080, 60.0), live)
		require.NoError(t, err)
		assert.Empty(t, warnings)
		assert.Equal(t, "first", req.LogicalMonitors[0].Monitors[0].ModeID)
	})
}

func TestReconcile_ResolutionFallback(t *testing.T) {
	t.Run("single candidate", func(t *testing.T) {
		live := inventory(1, models.Monitor{
			Connector: "DP-1",
			Modes:     []models.Mode{mode(1920, 1080, 75.0)},
		})

		req, warnings, err := Reconcile(single("DP-1", 1920, 1080, 60.0), live)
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		assert.Equal(t, "DP-1", warnings[0].Connector)
		assert.Equal(t, 75.0, warnings[0].Chosen.RefreshRate)
		assert.Equal(t, 60.0, warnings[0].Requested.RefreshRate)
		assert.Equal(t, "1920x1080@75.000", req.LogicalMonitors[0].Monitors[0].ModeID)
		assert.Contains(t, warnings[0].String(), "using 75.000 Hz")
	})

	t.Run("prefers preferred mode", func(t *testing.T) {
		preferred := mode(1920, 1080, 50.0)
		preferred.Preferred = true
		live := inventory(1, models.Monitor{
			Connector: "DP-1",
			Modes:     []models.Mode{mode(1920, 1080, 120.0), preferred, mode(3840, 2160, 60.0)},
		})

		req, warnings, err := Reconcile(single("DP-1", 1920, 1080, 60.0), live)
		require.NoError(t, err)
		assert.Len(t, warnings, 1)
		assert.Equal(t, "1920x1080@50.000", req.LogicalMonitors[0].Monitors[0].ModeID)
	})

	t.Run("otherwise highest refresh", func(t *testing.T) {
		live := inventory(1, models.Monitor{
			Connector: "DP-1",
			Modes:     []models.Mode{mode(1920, 1080, 50.0), mode(1920, 1080, 144.0), mode(1920, 1080, 120.0)},
		})

		req, _, err := Reconcile(single("DP-1", 1920, 1080, 60.0), live)
		require.NoError(t, err)
		assert.Equal(t, "1920x1080@144.000", req.LogicalMonitors[0].Monitors[0].ModeID)
	})

	t.Run("one warning per mismatch", func(t *testing.T) {
		target := models.Configuration{
			Name: "pair",
			LogicalMonitors: []models.LogicalMonitor{
				{Scale: 1, Monitors: []models.MonitorAssignment{
					{Connector: "DP-1", Mode: models.ModeDescriptor{Width: 1920, Height: 1080, RefreshRate: 60}},
				}},
				{X: 1920, Scale: 1, Monitors: []models.MonitorAssignment{
					{Connector: "DP-2", Mode: models.ModeDescriptor{Width: 1920, Height: 1080, RefreshRate: 60}},
				}},
				{X: 3840, Scale: 1, Monitors: []models.MonitorAssignment{
					{Connector: "DP-3", Mode: models.ModeDescriptor{Width: 1920, Height: 1080, RefreshRate: 60}},
				}},
			},
		}
		live := inventory(1,
			models.Monitor{Connector: "DP-1", Modes: []models.Mode{mode(1920, 1080, 75)}},
			models.Monitor{Connector: "DP-2", Modes: []models.Mode{mode(1920, 1080, 60)}},
			models.Monitor{Connector: "DP-3", Modes: []models.Mode{mode(1920, 1080, 50)}},
		)

		_, warnings, err := Reconcile(target, live)
		require.NoError(t, err)
		require.Len(t, warnings, 2)
		assert.Equal(t, "DP-1", warnings[0].Connector)
		assert.Equal(t, "DP-3", warnings[1].Connector)
	})
}

func TestReconcile_MissingConnector(t *testing.T) {
	live := inventory(1, models.Monitor{Connector: "HDMI-1", Modes: []models.Mode{mode(1920, 1080, 60)}})

	req, warnings, err := Reconcile(single("DP-1", 1920, 1080, 60.0), live)
	require.Error(t, err)
	assert.Empty(t, req.LogicalMonitors)
	assert.Nil(t, warnings)
	assert.True(t, errors.Is(err, ErrMissingMonitor))

	var agg *Error
	require.True(t, errors.As(err, &agg))
	assert.Equal(t, []string{"DP-1"}, agg.Connectors())
	assert.Equal(t, ReasonDisconnected, agg.Problems[0].Reason)
	assert.Contains(t, err.Error(), "DP-1")
}

func TestReconcile_ExactlyOneMissingAmongMany(t *testing.T) {
	target := models.Configuration{Name: "wall"}
	var monitors []models.Monitor
	for i := 1; i <= 4; i++ {
		conn := fmt.Sprintf("DP-%d", i)
		target.LogicalMonitors = append(target.LogicalMonitors, models.LogicalMonitor{
			X: (i - 1) * 1920, Scale: 1,
			Monitors: []models.MonitorAssignment{
				{Connector: conn, Mode: models.ModeDescriptor{Width: 1920, Height: 1080, RefreshRate: 60}},
			},
		})
		if i != 3 {
			monitors = append(monitors, models.Monitor{Connector: conn, Modes: []models.Mode{mode(1920, 1080, 60)}})
		}
	}

	_, _, err := Reconcile(target, inventory(1, monitors...))

	var agg *Error
	require.True(t, errors.As(err, &agg))
	assert.Equal(t, []string{"DP-3"}, agg.Connectors())
	assert.Equal(t, 3, agg.Problems[0].LogicalMonitor)
}

func TestReconcile_CollectsEveryProblem(t *testing.T) {
	target := models.Configuration{
		Name: "mixed",
		LogicalMonitors: []models.LogicalMonitor{
			{Scale: 1, Primary: true, Monitors: []models.MonitorAssignment{
				{Connector: "eDP-1", Mode: models.ModeDescriptor{Width: 2256, Height: 1504, RefreshRate: 60}},
			}},
			{X: 2256, Scale: 1, Monitors: []models.MonitorAssignment{
				{Connector: "DP-1", Mode: models.ModeDescriptor{Width: 3840, Height: 2160, RefreshRate: 60}},
				{Connector: "DP-2", Mode: models.ModeDescriptor{Width: 3840, Height: 2160, RefreshRate: 60}},
			}},
		},
	}
	live := inventory(1,
		models.Monitor{Connector: "eDP-1", Modes: []models.Mode{mode(2256, 1504, 60)}},
		models.Monitor{Connector: "DP-1", Modes: []models.Mode{mode(2560, 1440, 60), mode(1920, 1080, 60)}},
	)

	_, _, err := Reconcile(target, live)

	var agg *Error
	require.True(t, errors.As(err, &agg))
	require.Len(t, agg.Problems, 2)

	assert.Equal(t, "DP-1", agg.Problems[0].Connector)
	assert.Equal(t, ReasonNoMatchingResolution, agg.Problems[0].Reason)
	assert.Equal(t, []models.ModeDescriptor{
		{Width: 2560, Height: 1440, RefreshRate: 60},
		{Width: 1920, Height: 1080, RefreshRate: 60},
	}, agg.Problems[0].Available)

	assert.Equal(t, "DP-2", agg.Problems[1].Connector)
	assert.Equal(t, ReasonDisconnected, agg.Problems[1].Reason)

	var missing *MissingMonitorError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "DP-1", missing.Connector)
}

func TestReconcile_PreservesGeometryAndOrder(t *testing.T) {
	target := models.Configuration{
		Name: "rotated",
		LogicalMonitors: []models.LogicalMonitor{
			{X: 1080, Y: 400, Scale: 1.25, Transform: models.TransformNormal, Monitors: []models.MonitorAssignment{
				{Connector: "DP-2", Mode: models.ModeDescriptor{Width: 2560, Height: 1440, RefreshRate: 60}},
			}},
			{X: 0, Y: -100, Scale: 1, Transform: models.TransformRotate270, Monitors: []models.MonitorAssignment{
				{Connector: "DP-1", Mode: models.ModeDescriptor{Width: 1920, Height: 1080, RefreshRate: 60}},
			}},
		},
	}
	live := inventory(5,
		models.Monitor{Connector: "DP-1", Modes: []models.Mode{mode(1920, 1080, 60)}},
		models.Monitor{Connector: "DP-2", Modes: []models.Mode{mode(2560, 1440, 60)}},
	)

	req, _, err := Reconcile(target, live)
	require.NoError(t, err)
	require.Len(t, req.LogicalMonitors, 2)

	first, second := req.LogicalMonitors[0], req.LogicalMonitors[1]
	assert.Equal(t, "DP-2", first.Monitors[0].Connector)
	assert.Equal(t, 1080, first.X)
	assert.Equal(t, 400, first.Y)
	assert.Equal(t, 1.25, first.Scale)
	assert.Equal(t, "DP-1", second.Monitors[0].Connector)
	assert.Equal(t, -100, second.Y)
	assert.Equal(t, models.TransformRotate270, second.Transform)

	// no primary in the profile means none in the request
	assert.False(t, first.Primary)
	assert.False(t, second.Primary)
}

func TestReconcile_LayoutMode(t *testing.T) {
	live := inventory(1, models.Monitor{Connector: "DP-1", Modes: []models.Mode{mode(1920, 1080, 60)}})
	target := single("DP-1", 1920, 1080, 60)
	target.LayoutMode = models.LayoutModePhysical

	req, _, err := Reconcile(target, live)
	require.NoError(t, err)
	assert.Equal(t, models.LayoutModeUnset, req.LayoutMode)

	live.SupportsChangingLayoutMode = true
	req, _, err = Reconcile(target, live)
	require.NoError(t, err)
	assert.Equal(t, models.LayoutModePhysical, req.LayoutMode)
}

func TestReconcile_EmptyTarget(t *testing.T) {
	_, _, err := Reconcile(models.Configuration{Name: "empty"}, inventory(1))
	assert.ErrorIs(t, err, ErrEmptyConfiguration)
}

func TestReconcile_Deterministic(t *testing.T) {
	live := inventory(3,
		models.Monitor{Connector: "DP-1", Modes: []models.Mode{mode(1920, 1080, 75), mode(1920, 1080, 75)}},
	)
	target := single("DP-1", 1920, 1080, 60)
	target.LogicalMonitors = append(target.LogicalMonitors, models.LogicalMonitor{
		X: 1920, Scale: 1, Monitors: []models.MonitorAssignment{
			{Connector: "HDMI-9", Mode: models.ModeDescriptor{Width: 800, Height: 600, RefreshRate: 60}},
		},
	})

	_, _, firstErr := Reconcile(target, live)
	for i := 0; i < 10; i++ {
		_, _, err := Reconcile(target, live)
		assert.Equal(t, firstErr, err)
	}

	target.LogicalMonitors = target.LogicalMonitors[:1]
	first, firstWarn, err := Reconcile(target, live)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		req, warn, err := Reconcile(target, live)
		require.NoError(t, err)
		assert.Equal(t, first, req)
		assert.Equal(t, firstWarn, warn)
	}
}
