package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	gitindex "github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/domain/repositories"
)

// GitSnapshotRepository implements repositories.SnapshotRepository on top
// of a local git repository.
type GitSnapshotRepository struct {
	repo *git.Repository
	root string
}

// NewGitSnapshotRepository opens the repository containing the current
// working directory.
func NewGitSnapshotRepository() (repositories.SnapshotRepository, error) {
	return OpenGitSnapshotRepository(".")
}

// OpenGitSnapshotRepository opens the repository containing path, walking
// up the tree until a .git directory is found.
func OpenGitSnapshotRepository(path string) (repositories.SnapshotRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository at %s: %w", path, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open working tree: %w", err)
	}

	return &GitSnapshotRepository{
		repo: repo,
		root: worktree.Filesystem.Root(),
	}, nil
}

// FileAtRevision reads path from the commit tree at rev. The working tree
// is never consulted, uncommitted edits are invisible here.
func (r *GitSnapshotRepository) FileAtRevision(
	_ context.Context,
	path, rev string,
) ([]byte, error) {
	commit, err := r.resolveCommit(rev)
	if err != nil {
		return nil, err
	}

	file, err := commit.File(filepath.ToSlash(path))
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%s at %s: %w", path, rev, entities.ErrFileNotFound)
		}
		return nil, fmt.Errorf("failed to read %s at %s: %w", path, rev, err)
	}

	content, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s at %s: %w", path, rev, err)
	}
	return []byte(content), nil
}

// ChangedFiles diffs the trees of the two revisions and returns every
// path touched on either side, renames contribute both names.
func (r *GitSnapshotRepository) ChangedFiles(
	_ context.Context,
	base, head string,
) (map[string]struct{}, error) {
	baseCommit, err := r.resolveCommit(base)
	if err != nil {
		return nil, err
	}
	headCommit, err := r.resolveCommit(head)
	if err != nil {
		return nil, err
	}

	baseTree, err := baseCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree at %s: %w", base, err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree at %s: %w", head, err)
	}

	changes, err := object.DiffTree(baseTree, headTree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %s against %s: %w", head, base, err)
	}

	changed := make(map[string]struct{}, len(changes))
	for _, change := range changes {
		if change.From.Name != "" {
			changed[change.From.Name] = struct{}{}
		}
		if change.To.Name != "" {
			changed[change.To.Name] = struct{}{}
		}
	}
	return changed, nil
}

// CurrentRef returns the short branch name, or the commit hash when the
// head is detached.
func (r *GitSnapshotRepository) CurrentRef(_ context.Context) (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String(), nil
}

// ResolveBase returns the first candidate that resolves to a commit.
func (r *GitSnapshotRepository) ResolveBase(
	_ context.Context,
	candidates []string,
) (string, error) {
	for _, candidate := range candidates {
		if _, err := r.repo.ResolveRevision(plumbing.Revision(candidate)); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no baseline ref found (tried: %s)", strings.Join(candidates, ", "))
}

// TagsDescending returns the repository tags that parse as versions,
// highest first. Tags without a leading "v" are compared as if they had one.
func (r *GitSnapshotRepository) TagsDescending(_ context.Context) ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if semver.IsValid(canonicalTag(name)) {
			tags = append(tags, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	sort.Slice(tags, func(i, j int) bool {
		return semver.Compare(canonicalTag(tags[i]), canonicalTag(tags[j])) > 0
	})
	return tags, nil
}

// UnmergedFiles reads the index and returns every path with a conflict
// stage entry.
func (r *GitSnapshotRepository) UnmergedFiles(_ context.Context) (map[string]struct{}, error) {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	unmerged := make(map[string]struct{})
	for _, entry := range idx.Entries {
		switch entry.Stage {
		case gitindex.AncestorMode, gitindex.OurMode, gitindex.TheirMode:
			unmerged[entry.Name] = struct{}{}
		}
	}
	return unmerged, nil
}

// MergeHeadRef reads .git/MERGE_HEAD, present only while a merge with
// conflicts is in progress.
func (r *GitSnapshotRepository) MergeHeadRef(_ context.Context) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.root, ".git", "MERGE_HEAD"))
	if err != nil {
		return "", fmt.Errorf("no merge in progress: %w", err)
	}
	// Octopus merges list several parents, the first is enough for logs.
	head, _, _ := strings.Cut(strings.TrimSpace(string(data)), "\n")
	return head, nil
}

// StageFile adds the working-tree file at path to the index.
func (r *GitSnapshotRepository) StageFile(_ context.Context, path string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open working tree: %w", err)
	}
	if _, err := worktree.Add(filepath.ToSlash(path)); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return nil
}

// Root returns the absolute path of the working tree.
func (r *GitSnapshotRepository) Root() string {
	return r.root
}

func (r *GitSnapshotRepository) resolveCommit(rev string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}
	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	return commit, nil
}

// canonicalTag normalizes a tag name for semver comparison.
func canonicalTag(name string) string {
	if strings.HasPrefix(name, "v") {
		return name
	}
	return "v" + name
}
