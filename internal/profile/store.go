package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a9sk/displayctl/internal/models"
)

// Store keeps one JSON file per profile in a single directory.
type Store struct {
	dir string
}

// Summary describes a stored profile for listing. Err is set when the file
// could not be read or decoded; the other fields are then zero.
type Summary struct {
	Name          string
	Path          string
	Configuration models.Configuration
	MonitorCount  int
	Err           error
}

// NewStore returns a store rooted at dir. The directory is created lazily
// on the first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory profiles are stored in.
func (s *Store) Dir() string { return s.dir }

// Path returns the file a profile named name lives in.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Load reads and decodes the profile called name.
func (s *Store) Load(name string) (models.Configuration, error) {
	if err := ValidateName(name); err != nil {
		return models.Configuration{}, err
	}
	path := s.Path(name)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Configuration{}, &NotFoundError{Name: name, Dir: s.dir}
	}
	if err != nil {
		return models.Configuration{}, fmt.Errorf("reading profile %s: %w", path, err)
	}

	cfg, err := Unmarshal(data)
	if err != nil {
		var invalid *InvalidProfileError
		if errors.As(err, &invalid) && invalid.Name == "" {
			invalid.Name = name
		}
		return models.Configuration{}, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	if cfg.Name != name {
		err := &InvalidProfileError{
			Name:     name,
			Problems: []string{fmt.Sprintf("name %q does not match file %s", cfg.Name, filepath.Base(path))},
		}
		return models.Configuration{}, fmt.Errorf("decoding profile %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to <dir>/<cfg.Name>.json, replacing any previous file.
// The write goes through a temp file so a crash never leaves half a profile.
func (s *Store) Save(cfg models.Configuration) (string, error) {
	if err := ValidateName(cfg.Name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating profile dir %s: %w", s.dir, err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return "", err
	}

	outPath := s.Path(cfg.Name)
	tmp, err := os.CreateTemp(s.dir, "."+cfg.Name+"-*.json.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp profile file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing profile %s: %w", outPath, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("writing profile %s: %w", outPath, err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return "", fmt.Errorf("replacing profile %s: %w", outPath, err)
	}

	return outPath, nil
}

// List returns every *.json file in the directory sorted by name. Files that
// cannot be loaded, including ones whose name is not a valid profile name,
// are included with Err set so callers can show them.
func (s *Store) List() ([]Summary, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("scanning profile dir %s: %w", s.dir, err)
	}
	sort.Strings(paths)

	out := make([]Summary, 0, len(paths))
	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".json")
		sum := Summary{Name: name, Path: path}
		if err := ValidateName(name); err != nil {
			sum.Err = err
			out = append(out, sum)
			continue
		}
		cfg, err := s.Load(name)
		if err != nil {
			sum.Err = err
		} else {
			sum.Configuration = cfg
			sum.MonitorCount = len(cfg.Connectors())
		}
		out = append(out, sum)
	}
	return out, nil
}

// Delete removes the profile called name.
func (s *Store) Delete(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	err := os.Remove(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Name: name, Dir: s.dir}
	}
	if err != nil {
		return fmt.Errorf("deleting profile %s: %w", name, err)
	}
	return nil
}
