//go:build unit

package gitrepo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	gitindex "github.com/go-git/go-git/v5/plumbing/format/index"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/versioncheck/internal/domain/entities"
	"github.com/rios0rios0/versioncheck/internal/infrastructure/repositories/gitrepo"
)

// initRepo creates an empty repository in a temp directory.
func initRepo(t *testing.T) (*git.Repository, *git.Worktree, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	return repo, worktree, dir
}

// commitFile writes one file and commits it.
func commitFile(t *testing.T, worktree *git.Worktree, dir, name, content, message string) plumbing.Hash {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	_, err := worktree.Add(name)
	require.NoError(t, err)

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

func TestOpenGitSnapshotRepository(t *testing.T) {
	t.Parallel()

	t.Run("should open the repository from a nested directory", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")
		nested := filepath.Join(dir, "src", "deep")
		require.NoError(t, os.MkdirAll(nested, 0o755))

		// when
		snapshots, err := gitrepo.OpenGitSnapshotRepository(nested)

		// then
		require.NoError(t, err)
		assert.Equal(t, dir, snapshots.Root())
	})

	t.Run("should fail outside any repository", func(t *testing.T) {
		// when
		_, err := gitrepo.OpenGitSnapshotRepository(t.TempDir())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open git repository")
	})
}

func TestGitSnapshotRepositoryFileAtRevision(t *testing.T) {
	t.Parallel()

	t.Run("should read committed content, never the working tree", func(t *testing.T) {
		// given a committed file with uncommitted edits on disk
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "version.txt"), []byte("dirty\n"), 0o600))

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		content, err := snapshots.FileAtRevision(context.Background(), "version.txt", "HEAD")

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.0\n", string(content))
	})

	t.Run("should read historical content by commit hash", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		first := commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")
		commitFile(t, worktree, dir, "version.txt", "1.1.0\n", "bump")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		old, err := snapshots.FileAtRevision(context.Background(), "version.txt", first.String())

		// then
		require.NoError(t, err)
		assert.Equal(t, "1.0.0\n", string(old))
	})

	t.Run("should wrap a missing file in ErrFileNotFound", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		_, err = snapshots.FileAtRevision(context.Background(), "missing.txt", "HEAD")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrFileNotFound)
	})

	t.Run("should fail on an unresolvable revision", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		_, err = snapshots.FileAtRevision(context.Background(), "version.txt", "no-such-branch")

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `failed to resolve revision "no-such-branch"`)
	})
}

func TestGitSnapshotRepositoryChangedFiles(t *testing.T) {
	t.Parallel()

	t.Run("should list files touched between two revisions", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "stable.txt", "same\n", "init")
		base := commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "add version")
		commitFile(t, worktree, dir, "version.txt", "1.1.0\n", "bump")
		commitFile(t, worktree, dir, "sub/new.txt", "fresh\n", "add nested")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		changed, err := snapshots.ChangedFiles(context.Background(), base.String(), "HEAD")

		// then
		require.NoError(t, err)
		assert.Contains(t, changed, "version.txt")
		assert.Contains(t, changed, "sub/new.txt")
		assert.NotContains(t, changed, "stable.txt")
	})

	t.Run("should return an empty set for identical revisions", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		changed, err := snapshots.ChangedFiles(context.Background(), "HEAD", "HEAD")

		// then
		require.NoError(t, err)
		assert.Empty(t, changed)
	})
}

func TestGitSnapshotRepositoryRefs(t *testing.T) {
	t.Parallel()

	t.Run("should return the short branch name as the current ref", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		ref, err := snapshots.CurrentRef(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, "master", ref)
	})

	t.Run("should resolve the first reachable baseline candidate", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when origin/main does not exist but master does
		base, err := snapshots.ResolveBase(context.Background(), []string{"origin/main", "master"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "master", base)
	})

	t.Run("should fail when no candidate resolves", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		_, err = snapshots.ResolveBase(context.Background(), []string{"origin/main", "origin/master"})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no baseline ref found (tried: origin/main, origin/master)")
	})

	t.Run("should list version tags highest first", func(t *testing.T) {
		// given lightweight tags, one of them not a version
		repo, worktree, dir := initRepo(t)
		hash := commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")
		for _, tag := range []string{"v1.2.0", "v1.10.0", "0.9.0", "nightly"} {
			_, err := repo.CreateTag(tag, hash, nil)
			require.NoError(t, err)
		}

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		tags, err := snapshots.TagsDescending(context.Background())

		// then numeric ordering, the unparseable tag dropped
		require.NoError(t, err)
		assert.Equal(t, []string{"v1.10.0", "v1.2.0", "0.9.0"}, tags)
	})
}

func TestGitSnapshotRepositoryMergeState(t *testing.T) {
	t.Parallel()

	t.Run("should report no unmerged files on a clean index", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		unmerged, err := snapshots.UnmergedFiles(context.Background())

		// then
		require.NoError(t, err)
		assert.Empty(t, unmerged)
	})

	t.Run("should report paths with conflict stage entries", func(t *testing.T) {
		// given an index carrying ours and theirs stages
		repo, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")

		idx, err := repo.Storer.Index()
		require.NoError(t, err)
		idx.Entries = append(idx.Entries,
			&gitindex.Entry{Name: "conflicted.txt", Stage: gitindex.OurMode},
			&gitindex.Entry{Name: "conflicted.txt", Stage: gitindex.TheirMode},
		)
		require.NoError(t, repo.Storer.SetIndex(idx))

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		unmerged, err := snapshots.UnmergedFiles(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, map[string]struct{}{"conflicted.txt": {}}, unmerged)
	})

	t.Run("should read the first merge head while a merge is in progress", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")
		mergeHead := "0123456789abcdef0123456789abcdef01234567\nfedcba9876543210fedcba9876543210fedcba98\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".git", "MERGE_HEAD"), []byte(mergeHead), 0o600))

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		head, err := snapshots.MergeHeadRef(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", head)
	})

	t.Run("should fail when no merge is in progress", func(t *testing.T) {
		// given
		_, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		_, err = snapshots.MergeHeadRef(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no merge in progress")
	})

	t.Run("should stage a working tree file", func(t *testing.T) {
		// given
		repo, worktree, dir := initRepo(t)
		commitFile(t, worktree, dir, "version.txt", "1.0.0\n", "init")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "resolved.txt"), []byte("2.0.0\n"), 0o600))

		snapshots, err := gitrepo.OpenGitSnapshotRepository(dir)
		require.NoError(t, err)

		// when
		require.NoError(t, snapshots.StageFile(context.Background(), "resolved.txt"))

		// then
		idx, err := repo.Storer.Index()
		require.NoError(t, err)
		_, entryErr := idx.Entry("resolved.txt")
		assert.NoError(t, entryErr)
	})
}
