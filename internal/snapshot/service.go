// Package snapshot ties the compositor, the profile store and the
// reconciliation engine together for the CLI commands.
package snapshot

import (
	"fmt"

	"github.com/a9sk/displayctl/internal/models"
	"github.com/a9sk/displayctl/internal/mutter"
	"github.com/a9sk/displayctl/internal/profile"
	"github.com/rs/zerolog"
)

// DisplayConfig is the subset of the compositor API the service needs.
// *mutter.Client satisfies it.
type DisplayConfig interface {
	GetCurrentState() (mutter.RawState, error)
	ApplyMonitorsConfig(req models.ApplyRequest, method models.ApplyMethod) error
}

// Service runs one command against fresh compositor state. It holds no
// state between calls.
type Service struct {
	display DisplayConfig
	store   *profile.Store
	log     zerolog.Logger
}

// New returns a Service. display may be nil for commands that only touch
// the profile store (list, delete).
func New(display DisplayConfig, store *profile.Store, log zerolog.Logger) *Service {
	return &Service{display: display, store: store, log: log}
}

// Current queries and normalizes the live state.
func (s *Service) Current() (models.LiveInventory, error) {
	if s.display == nil {
		return models.LiveInventory{}, fmt.Errorf("no display connection")
	}
	raw, err := s.display.GetCurrentState()
	if err != nil {
		return models.LiveInventory{}, fmt.Errorf("querying display state: %w", err)
	}
	inv, err := mutter.Normalize(raw)
	if err != nil {
		return models.LiveInventory{}, err
	}
	s.log.Debug().
		Uint32("serial", inv.Serial).
		Int("monitors", len(inv.Monitors)).
		Int("logical_monitors", len(inv.ActiveLogicalMonitors)).
		Msg("read display state")
	return inv, nil
}

// List returns every stored profile.
func (s *Service) List() ([]profile.Summary, error) {
	return s.store.List()
}

// Delete removes a stored profile.
func (s *Service) Delete(name string) error {
	if err := s.store.Delete(name); err != nil {
		return err
	}
	s.log.Info().Str("profile", name).Msg("deleted profile")
	return nil
}
