package entities

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is the first config location probed and the file
	// `init` scaffolds.
	DefaultConfigFile = "versioncheck.yaml"
	// DefaultHeadRef is the revision checked when none is configured.
	DefaultHeadRef = "HEAD"
	// DefaultBumpTool is the external tool `update` delegates to.
	DefaultBumpTool = "bump2version"
	// LatestTagBase selects the highest semver tag as the baseline.
	LatestTagBase = "latest-tag"
)

// Environment overrides applied while loading, never read elsewhere.
const (
	envConfigFile = "VERSION_CONFIG_FILE"
	envBase       = "VERSION_BASE"
	envHead       = "VERSION_CURRENT"
	envPattern    = "VERSION_REGEX"
)

// ExampleSettings is the config written by `versioncheck init`.
const ExampleSettings = `# versioncheck configuration
# The top-level current_version is the single source of truth; every file
# listed below must carry it and must be bumped together with it.
current_version: 0.1.0

# Baseline revision to compare against. Leave empty to try origin/main and
# origin/master, or use "latest-tag" for the highest semver tag.
base: ""

files:
  - path: version.txt
  - path: openapi-spec.json
    search: '"version": "{current_version}"'
    replace: '"version": "{new_version}"'
`

// BaseRefCandidates lists the fallback baseline refs tried, in order, when
// no base is configured.
func BaseRefCandidates() []string {
	return []string{"origin/main", "origin/master"}
}

// Settings is the explicit configuration struct passed into every command;
// commands never read ambient process state themselves.
type Settings struct {
	CurrentVersion string   `toml:"current_version" yaml:"current_version"`
	Base           string   `toml:"base"            yaml:"base"`
	Head           string   `toml:"head"            yaml:"head"`
	Pattern        string   `toml:"pattern"         yaml:"pattern"`
	BumpTool       string   `toml:"bump_tool"       yaml:"bump_tool"`
	Files          []Target `toml:"files"           yaml:"files"`

	current Version
	pattern *Pattern
}

// NewSettings loads, validates and finishes the settings at path. The file
// format is chosen by extension: .toml is TOML, everything else YAML.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseSettings(data, path)
}

// ParseSettings builds Settings from raw config bytes. It exists separately
// from NewSettings because during conflict resolution the config is read
// from a commit snapshot, not from the (possibly conflicted) working tree.
func ParseSettings(data []byte, path string) (*Settings, error) {
	settings := &Settings{}

	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, settings)
	} else {
		err = yaml.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	settings.applyEnvOverrides()
	settings.applyDefaults()
	if err := settings.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return settings, nil
}

// FindConfigFile probes the default config locations in order. The
// VERSION_CONFIG_FILE environment variable short-circuits the probe.
func FindConfigFile() (string, error) {
	if path := os.Getenv(envConfigFile); path != "" {
		return path, nil
	}

	candidates := []string{
		DefaultConfigFile, "versioncheck.yml",
		".versioncheck.yaml", ".versioncheck.yml",
		"versioncheck.toml", ".versioncheck.toml",
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no config file found (tried: %s)", strings.Join(candidates, ", "))
}

// ApplyOverrides replaces base, head and pattern with CLI flag values.
// Empty values keep the configured ones.
func (s *Settings) ApplyOverrides(base, head, pattern string) error {
	if base != "" {
		s.Base = base
	}
	if head != "" {
		s.Head = head
	}
	if pattern != "" {
		compiled, err := NewPattern(pattern)
		if err != nil {
			return err
		}
		s.Pattern = pattern
		s.pattern = compiled
	}
	return nil
}

// Current returns the parsed top-level version.
func (s *Settings) Current() Version {
	return s.current
}

// SearchPattern returns the compiled global version pattern.
func (s *Settings) SearchPattern() *Pattern {
	return s.pattern
}

// BumpToolName returns the configured external bump tool.
func (s *Settings) BumpToolName() string {
	return s.BumpTool
}

func (s *Settings) applyEnvOverrides() {
	if base := os.Getenv(envBase); base != "" {
		s.Base = base
	}
	if head := os.Getenv(envHead); head != "" {
		s.Head = head
	}
	if pattern := os.Getenv(envPattern); pattern != "" {
		s.Pattern = pattern
	}
}

func (s *Settings) applyDefaults() {
	if s.Head == "" {
		s.Head = DefaultHeadRef
	}
	if s.BumpTool == "" {
		s.BumpTool = DefaultBumpTool
	}
}

func (s *Settings) validate() error {
	if s.CurrentVersion == "" {
		return fmt.Errorf("current_version is required")
	}

	current, err := ParseVersion(s.CurrentVersion)
	if err != nil {
		return fmt.Errorf("failed to parse current_version: %w", err)
	}
	s.current = current

	pattern, err := NewPattern(s.Pattern)
	if err != nil {
		return err
	}
	s.pattern = pattern

	for i, target := range s.Files {
		if target.Path == "" {
			return fmt.Errorf("files[%d]: path is required", i)
		}
	}
	return nil
}
