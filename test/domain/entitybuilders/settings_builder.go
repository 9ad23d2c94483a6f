//go:build integration || unit || test

// Package entitybuilders provides fluent builders for domain entities used
// in tests.
package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"
	"strings"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create fully validated test settings with a fluent
// interface. The settings are produced through the real config loader, so
// the unexported compiled state (current version, pattern) is always set.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	currentVersion string
	base           string
	head           string
	pattern        string
	bumpTool       string
	files          []entities.Target
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder:    testkit.NewBaseBuilder(),
		currentVersion: "1.2.3",
		base:           "",
		head:           "",
		pattern:        "",
		bumpTool:       "",
		files:          []entities.Target{{Path: "version.txt"}},
	}
}

// WithCurrentVersion sets the top-level current version.
func (b *SettingsBuilder) WithCurrentVersion(version string) *SettingsBuilder {
	b.currentVersion = version
	return b
}

// WithBase sets the baseline revision.
func (b *SettingsBuilder) WithBase(base string) *SettingsBuilder {
	b.base = base
	return b
}

// WithHead sets the head revision.
func (b *SettingsBuilder) WithHead(head string) *SettingsBuilder {
	b.head = head
	return b
}

// WithPattern sets the global version search pattern.
func (b *SettingsBuilder) WithPattern(pattern string) *SettingsBuilder {
	b.pattern = pattern
	return b
}

// WithBumpTool sets the external bump tool name.
func (b *SettingsBuilder) WithBumpTool(tool string) *SettingsBuilder {
	b.bumpTool = tool
	return b
}

// WithFiles replaces the configured targets.
func (b *SettingsBuilder) WithFiles(files ...entities.Target) *SettingsBuilder {
	b.files = files
	return b
}

// BuildConfig renders the builder state as YAML config bytes.
func (b *SettingsBuilder) BuildConfig() []byte {
	var sb strings.Builder
	fmt.Fprintf(&sb, "current_version: %q\n", b.currentVersion)
	if b.base != "" {
		fmt.Fprintf(&sb, "base: %q\n", b.base)
	}
	if b.head != "" {
		fmt.Fprintf(&sb, "head: %q\n", b.head)
	}
	if b.pattern != "" {
		fmt.Fprintf(&sb, "pattern: %q\n", b.pattern)
	}
	if b.bumpTool != "" {
		fmt.Fprintf(&sb, "bump_tool: %q\n", b.bumpTool)
	}
	if len(b.files) > 0 {
		sb.WriteString("files:\n")
		for _, target := range b.files {
			fmt.Fprintf(&sb, "  - path: %q\n", target.Path)
			if target.Search != "" {
				fmt.Fprintf(&sb, "    search: %q\n", target.Search)
			}
			if target.Replace != "" {
				fmt.Fprintf(&sb, "    replace: %q\n", target.Replace)
			}
		}
	}
	return []byte(sb.String())
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type. It panics
// on invalid builder state so misconfigured tests fail loudly.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings, err := entities.ParseSettings(b.BuildConfig(), entities.DefaultConfigFile)
	if err != nil {
		panic(fmt.Sprintf("settings builder produced an invalid config: %v", err))
	}
	return settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.currentVersion = "1.2.3"
	b.base = ""
	b.head = ""
	b.pattern = ""
	b.bumpTool = ""
	b.files = []entities.Target{{Path: "version.txt"}}
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	files := make([]entities.Target, len(b.files))
	copy(files, b.files)
	return &SettingsBuilder{
		BaseBuilder:    b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		currentVersion: b.currentVersion,
		base:           b.base,
		head:           b.head,
		pattern:        b.pattern,
		bumpTool:       b.bumpTool,
		files:          files,
	}
}
