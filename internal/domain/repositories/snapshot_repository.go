package repositories

import (
	"context"
)

// SnapshotRepository reads file snapshots and revision metadata from the
// underlying version-control system. Implementations never create commits
// or branches; the only writes are staging files already resolved in the
// working tree.
type SnapshotRepository interface {
	// FileAtRevision returns the content of path as it existed at rev.
	// entities.ErrFileNotFound is wrapped when path is absent at rev.
	FileAtRevision(ctx context.Context, path, rev string) ([]byte, error)

	// ChangedFiles returns the set of paths whose content differs between
	// the two revisions (a name-only diff).
	ChangedFiles(ctx context.Context, base, head string) (map[string]struct{}, error)

	// CurrentRef returns the short name of the checked-out reference, or
	// the hash when detached.
	CurrentRef(ctx context.Context) (string, error)

	// ResolveBase returns the first candidate ref that resolves.
	ResolveBase(ctx context.Context, candidates []string) (string, error)

	// TagsDescending returns tag names sorted highest version first.
	TagsDescending(ctx context.Context) ([]string, error)

	// UnmergedFiles returns the paths currently conflicted in the index.
	UnmergedFiles(ctx context.Context) (map[string]struct{}, error)

	// MergeHeadRef returns the revision being merged in, failing when no
	// merge is in progress.
	MergeHeadRef(ctx context.Context) (string, error)

	// StageFile adds a working-tree file to the index.
	StageFile(ctx context.Context, path string) error

	// Root returns the absolute path of the working tree.
	Root() string
}
