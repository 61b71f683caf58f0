// Package config loads the optional tapdemo.yaml that lays out the demo
// surfaces.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	taperrors "github.com/go-drift/tappable/pkg/errors"
	"github.com/go-drift/tappable/pkg/tappable"
)

// FileName is the configuration file looked up by LoadOptional.
const FileName = "tapdemo.yaml"

// SchemaVersion is the newest configuration version understood. Files
// with the same major version are accepted.
const SchemaVersion = "v1.0.0"

// Haptics values.
const (
	HapticsSilent = "silent"
	HapticsBeep   = "beep"
)

// Config represents tapdemo.yaml.
type Config struct {
	Version  string          `yaml:"version,omitempty"`
	Haptics  string          `yaml:"haptics,omitempty"`
	Surfaces []SurfaceConfig `yaml:"surfaces,omitempty"`
}

// SurfaceConfig places one surface on a grid of terminal cells.
type SurfaceConfig struct {
	Label string `yaml:"label"`
	// Parent is the label of the enclosing surface, which must be listed
	// earlier.
	Parent string `yaml:"parent,omitempty"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	tappable.Options `yaml:",inline"`
}

// Default returns the layout used when no file is present: a panel with a
// nested button, a link and a disabled button.
func Default() *Config {
	return &Config{
		Version: SchemaVersion,
		Haptics: HapticsSilent,
		Surfaces: []SurfaceConfig{
			{Label: "Panel", X: 2, Y: 1, Width: 40, Height: 9, Options: tappable.Options{HoverMode: tappable.ModeOpacity}},
			{Label: "Save", Parent: "Panel", X: 5, Y: 3, Width: 14, Height: 3, Options: tappable.Options{ShowRipples: true, StopPropagation: true}},
			{Label: "Details", Parent: "Panel", X: 24, Y: 3, Width: 14, Height: 3, Options: tappable.Options{Role: tappable.RoleLink, ActiveMode: tappable.ModeOpacity}},
			{Label: "Delete", X: 2, Y: 11, Width: 14, Height: 3, Options: tappable.Options{Disabled: true}},
		},
	}
}

// LoadOptional reads tapdemo.yaml from dir, returning Default when the
// file does not exist.
func LoadOptional(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Load reads and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration data. Missing fields take
// their defaults; an empty surface list takes the default layout.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	if strings.TrimSpace(cfg.Version) == "" {
		cfg.Version = SchemaVersion
	}
	if cfg.Haptics == "" {
		cfg.Haptics = HapticsSilent
	}
	if len(cfg.Surfaces) == 0 {
		cfg.Surfaces = Default().Surfaces
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks version, haptics and layout.
func (c *Config) Validate() error {
	if !semver.IsValid(c.Version) {
		return invalid("version", c.Version, "not a semantic version")
	}
	if semver.Major(c.Version) != semver.Major(SchemaVersion) {
		return invalid("version", c.Version, "unsupported major version, want "+semver.Major(SchemaVersion))
	}
	if semver.Compare(c.Version, SchemaVersion) > 0 {
		return invalid("version", c.Version, "newer than "+SchemaVersion)
	}
	switch c.Haptics {
	case HapticsSilent, HapticsBeep:
	default:
		return invalid("haptics", c.Haptics, "want silent or beep")
	}

	seen := make(map[string]bool, len(c.Surfaces))
	for i, s := range c.Surfaces {
		field := fmt.Sprintf("surfaces[%d]", i)
		if strings.TrimSpace(s.Label) == "" {
			return invalid(field+".label", s.Label, "must not be empty")
		}
		if seen[s.Label] {
			return invalid(field+".label", s.Label, "duplicate label")
		}
		if s.Width <= 0 || s.Height <= 0 {
			return invalid(field+".size", fmt.Sprintf("%dx%d", s.Width, s.Height), "must be positive")
		}
		if s.X < 0 || s.Y < 0 {
			return invalid(field+".position", fmt.Sprintf("%d,%d", s.X, s.Y), "must not be negative")
		}
		if s.ActiveEffectDelay < 0 {
			return invalid(field+".activeEffectDelay", s.ActiveEffectDelay, "must not be negative")
		}
		if s.Parent != "" && !seen[s.Parent] {
			return invalid(field+".parent", s.Parent, "must name an earlier surface")
		}
		seen[s.Label] = true
	}
	return nil
}

// Find returns the surface with the given label.
func (c *Config) Find(label string) (SurfaceConfig, bool) {
	for _, s := range c.Surfaces {
		if s.Label == label {
			return s, true
		}
	}
	return SurfaceConfig{}, false
}

func invalid(field string, value any, reason string) error {
	return fmt.Errorf("invalid %s: %w", FileName, &taperrors.ConfigError{Field: field, Value: value, Reason: reason})
}
