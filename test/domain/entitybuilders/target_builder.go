//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// TargetBuilder helps create test targets with a fluent interface.
type TargetBuilder struct {
	*testkit.BaseBuilder
	path    string
	search  string
	replace string
}

// NewTargetBuilder creates a new target builder with sensible defaults.
func NewTargetBuilder() *TargetBuilder {
	return &TargetBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "version.txt",
		search:      "",
		replace:     "",
	}
}

// WithPath sets the target file path.
func (b *TargetBuilder) WithPath(path string) *TargetBuilder {
	b.path = path
	return b
}

// WithSearch sets the literal search template.
func (b *TargetBuilder) WithSearch(search string) *TargetBuilder {
	b.search = search
	return b
}

// WithReplace sets the replace template.
func (b *TargetBuilder) WithReplace(replace string) *TargetBuilder {
	b.replace = replace
	return b
}

// Build creates the target (satisfies testkit.Builder interface).
func (b *TargetBuilder) Build() interface{} {
	return b.BuildTarget()
}

// BuildTarget creates the target with a concrete return type.
func (b *TargetBuilder) BuildTarget() entities.Target {
	return entities.Target{
		Path:    b.path,
		Search:  b.search,
		Replace: b.replace,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *TargetBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "version.txt"
	b.search = ""
	b.replace = ""
	return b
}

// Clone creates a deep copy of the TargetBuilder.
func (b *TargetBuilder) Clone() testkit.Builder {
	return &TargetBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		search:      b.search,
		replace:     b.replace,
	}
}
