package entities

// CurrentVersionPlaceholder is the token substituted into search and
// replace templates, following the bump2version config contract.
const CurrentVersionPlaceholder = "{current_version}"

// Target is one configured file whose hardcoded version must stay in sync
// with the top-level current version.
type Target struct {
	Path    string `toml:"path"    yaml:"path"`
	Search  string `toml:"search"  yaml:"search"`  // optional literal template
	Replace string `toml:"replace" yaml:"replace"` // optional, used by external bump tools
}

// HasSearchTemplate reports whether the target declares an explicit search
// template instead of relying on the global version pattern.
func (t Target) HasSearchTemplate() bool {
	return t.Search != ""
}
