package snapshot

import (
	"github.com/a9sk/displayctl/internal/models"
	"github.com/a9sk/displayctl/internal/reconcile"
)

// Plan is a reconciled profile ready to be applied.
type Plan struct {
	Configuration models.Configuration
	Request       models.ApplyRequest
	Warnings      []reconcile.Warning
}

// Plan loads profile name and reconciles it against a fresh state query.
func (s *Service) Plan(name string) (Plan, error) {
	cfg, err := s.store.Load(name)
	if err != nil {
		return Plan{}, err
	}

	inv, err := s.Current()
	if err != nil {
		return Plan{}, err
	}

	req, warnings, err := reconcile.Reconcile(cfg, inv)
	if err != nil {
		return Plan{}, err
	}

	for _, w := range warnings {
		s.log.Debug().
			Str("connector", w.Connector).
			Float64("requested_hz", w.Requested.RefreshRate).
			Float64("chosen_hz", w.Chosen.RefreshRate).
			Msg("refresh rate substituted")
	}
	if cfg.Serial != inv.Serial {
		s.log.Debug().
			Uint32("saved_serial", cfg.Serial).
			Uint32("live_serial", inv.Serial).
			Msg("display state changed since the profile was saved")
	}

	return Plan{Configuration: cfg, Request: req, Warnings: warnings}, nil
}

// Load plans profile name and, unless dryRun is set, applies it with
// method. Remote rejections, including a stale serial, are returned
// unchanged; the caller has to start over with a new query.
func (s *Service) Load(name string, method models.ApplyMethod, dryRun bool) (Plan, error) {
	plan, err := s.Plan(name)
	if err != nil {
		return Plan{}, err
	}
	if dryRun {
		return plan, nil
	}

	s.log.Debug().
		Str("profile", name).
		Stringer("method", method).
		Uint32("serial", plan.Request.Serial).
		Msg("applying monitors config")
	if err := s.display.ApplyMonitorsConfig(plan.Request, method); err != nil {
		return plan, err
	}
	s.log.Info().Str("profile", name).Stringer("method", method).Msg("applied profile")
	return plan, nil
}
