package file

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/glazed/internal/core/domain"
	"github.com/custodia-labs/glazed/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// DefaultFileName is the settings file looked up when no path is given.
const DefaultFileName = "config.toml"

// fileConfig is the on-disk layout of the settings.
type fileConfig struct {
	BindAddress   string            `toml:"bind_address" yaml:"bind_address"`
	PublicAddress string            `toml:"public_address,omitempty" yaml:"public_address,omitempty"`
	TiledClient   tiledSection      `toml:"tiled_client" yaml:"tiled_client"`
	Resolution    resolutionSection `toml:"resolution" yaml:"resolution"`
}

type tiledSection struct {
	Address           string  `toml:"address" yaml:"address"`
	RequestsPerSecond float64 `toml:"requests_per_second" yaml:"requests_per_second"`
}

type resolutionSection struct {
	MaxConcurrentStreams int `toml:"max_concurrent_streams" yaml:"max_concurrent_streams"`
}

func fromSettings(s domain.Settings) fileConfig {
	return fileConfig{
		BindAddress:   s.BindAddress,
		PublicAddress: s.PublicAddress,
		TiledClient: tiledSection{
			Address:           s.Tiled.Address,
			RequestsPerSecond: s.Tiled.RequestsPerSecond,
		},
		Resolution: resolutionSection{
			MaxConcurrentStreams: s.Resolution.MaxConcurrentStreams,
		},
	}
}

func (c fileConfig) settings() domain.Settings {
	return domain.Settings{
		BindAddress:   c.BindAddress,
		PublicAddress: c.PublicAddress,
		Tiled: domain.TiledSettings{
			Address:           c.TiledClient.Address,
			RequestsPerSecond: c.TiledClient.RequestsPerSecond,
		},
		Resolution: domain.ResolutionSettings{
			MaxConcurrentStreams: c.Resolution.MaxConcurrentStreams,
		},
	}
}

// ConfigStore is a file-based implementation of driven.ConfigStore.
// Files ending in .yaml or .yml are YAML; anything else is TOML.
type ConfigStore struct {
	mu       sync.Mutex
	filePath string
}

// NewConfigStore creates a config store for the file at path.
// If path is empty, defaults to ~/.glazed/config.toml.
func NewConfigStore(path string) (*ConfigStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".glazed", DefaultFileName)
	}
	return &ConfigStore{filePath: path}, nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// Load reads the settings file over the defaults and validates the result.
// A missing file yields the defaults. Unknown keys are errors.
func (s *ConfigStore) Load() (domain.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := fromSettings(domain.DefaultSettings())

	data, err := os.ReadFile(s.filePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file yet - defaults apply
	case err != nil:
		return domain.Settings{}, err
	default:
		if err := s.decode(data, &cfg); err != nil {
			return domain.Settings{}, fmt.Errorf("parse %s: %w", s.filePath, err)
		}
	}

	settings := cfg.settings()
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, fmt.Errorf("%s: %w", s.filePath, err)
	}
	return settings, nil
}

// Save writes the settings to the file, creating its directory.
func (s *ConfigStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.encode(fromSettings(settings))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return err
	}
	// Write with restricted permissions
	return os.WriteFile(s.filePath, data, 0600)
}

func (s *ConfigStore) isYAML() bool {
	ext := strings.ToLower(filepath.Ext(s.filePath))
	return ext == ".yaml" || ext == ".yml"
}

func (s *ConfigStore) decode(data []byte, cfg *fileConfig) error {
	if s.isYAML() {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func (s *ConfigStore) encode(cfg fileConfig) ([]byte, error) {
	if s.isYAML() {
		return yaml.Marshal(cfg)
	}
	return toml.Marshal(cfg)
}
