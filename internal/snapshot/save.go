package snapshot

import (
	"fmt"

	"github.com/a9sk/displayctl/internal/models"
	"github.com/a9sk/displayctl/internal/profile"
)

// Save captures the active layout as profile name and writes it to the
// store, replacing an existing profile of the same name.
func (s *Service) Save(name string) (models.Configuration, string, error) {
	// reject bad names before talking to the compositor
	if err := profile.ValidateName(name); err != nil {
		return models.Configuration{}, "", err
	}

	inv, err := s.Current()
	if err != nil {
		return models.Configuration{}, "", err
	}
	if len(inv.ActiveLogicalMonitors) == 0 {
		return models.Configuration{}, "", fmt.Errorf("no active logical monitors to save")
	}

	cfg := inv.Capture(name)
	path, err := s.store.Save(cfg)
	if err != nil {
		return models.Configuration{}, "", err
	}

	s.log.Info().
		Str("profile", name).
		Str("path", path).
		Strs("connectors", cfg.Connectors()).
		Msg("saved profile")
	return cfg, path, nil
}
