package gitrepo

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	githash "github.com/go-git/go-git/v5/plumbing/hash"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/thiagokokada/jjk-go/internal/vcs"
)

const diffContextLines = 3

func (s *Source) Show(ctx context.Context, revision string) (*vcs.ShowOutput, error) {
	if revision == workingCopyID {
		return s.showWorktree()
	}
	commit, err := s.resolveCommit(revision)
	if err != nil {
		return nil, err
	}

	show := &vcs.ShowOutput{
		ChangeID:    commit.Hash.String()[:shortIDLen],
		CommitID:    commit.Hash.String(),
		Author:      fmt.Sprintf("%s <%s>", commit.Author.Name, commit.Author.Email),
		Timestamp:   relativeTime(commit.Committer.When),
		Description: strings.TrimRight(commit.Message, "\n"),
	}

	var parentTree *object.Tree
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("resolve parent: %w", err)
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, fmt.Errorf("parent tree: %w", err)
		}
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("commit tree: %w", err)
	}
	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}
	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("build patch: %w", err)
	}
	show.Diff = patch.String()
	show.Summary = summaryFromChanges(changes)
	return show, nil
}

// resolveCommit accepts a full or abbreviated commit hash.
func (s *Source) resolveCommit(revision string) (*object.Commit, error) {
	revision = strings.TrimSpace(revision)
	if revision == "" {
		return nil, fmt.Errorf("revision not specified")
	}
	if len(revision) == githash.Size*2 {
		return s.repo.CommitObject(plumbing.NewHash(revision))
	}
	hash, err := s.repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", revision, err)
	}
	return s.repo.CommitObject(*hash)
}

func summaryFromChanges(changes object.Changes) []vcs.DiffEntry {
	entries := make([]vcs.DiffEntry, 0, len(changes))
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			continue
		}
		entry := vcs.DiffEntry{Path: change.To.Name}
		switch action {
		case merkletrie.Insert:
			entry.Status = vcs.DiffAdded
		case merkletrie.Delete:
			entry.Status = vcs.DiffDeleted
			entry.Path = change.From.Name
		default:
			entry.Status = vcs.DiffModified
		}
		entries = append(entries, entry)
	}
	return entries
}

// showWorktree reports uncommitted changes against HEAD as a unified
// diff, one file section per modified path.
func (s *Source) showWorktree() (*vcs.ShowOutput, error) {
	show := &vcs.ShowOutput{
		ChangeID:    workingCopyID,
		CommitID:    workingCopyID,
		Timestamp:   "now",
		Description: "(working copy)",
	}

	wt, err := s.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("worktree status: %w", err)
	}

	paths := make([]string, 0, len(status))
	for path, st := range status {
		if st.Worktree == gitlib.Unmodified && st.Staging == gitlib.Unmodified {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var diff strings.Builder
	for _, path := range paths {
		st := status[path]
		show.Summary = append(show.Summary, vcs.DiffEntry{Status: statusCode(st), Path: path})
		section, err := s.worktreeFileDiff(wt, path)
		if err != nil {
			return nil, err
		}
		diff.WriteString(section)
	}
	show.Diff = diff.String()
	return show, nil
}

// worktreeFileDiff diffs one path between the HEAD tree and the
// worktree file contents.
func (s *Source) worktreeFileDiff(wt *gitlib.Worktree, path string) (string, error) {
	old, err := s.headFileContent(path)
	if err != nil {
		return "", err
	}
	current, err := worktreeFileContent(wt, path)
	if err != nil {
		return "", err
	}
	if old == current {
		return "", nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(old),
		B:        difflib.SplitLines(current),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  diffContextLines,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return text, nil
}

func (s *Source) headFileContent(path string) (string, error) {
	ref, err := s.repo.Head()
	if err != nil {
		return "", nil
	}
	commit, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return "", fmt.Errorf("resolve HEAD commit: %w", err)
	}
	file, err := commit.File(path)
	if err != nil {
		if err == object.ErrFileNotFound {
			return "", nil
		}
		return "", fmt.Errorf("read %s at HEAD: %w", path, err)
	}
	return file.Contents()
}

func worktreeFileContent(wt *gitlib.Worktree, path string) (string, error) {
	f, err := wt.Filesystem.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read %s: %w", filepath.Clean(path), err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filepath.Clean(path), err)
	}
	return string(data), nil
}

func statusCode(st *gitlib.FileStatus) vcs.DiffStatus {
	code := st.Worktree
	if code == gitlib.Unmodified {
		code = st.Staging
	}
	switch code {
	case gitlib.Added, gitlib.Untracked:
		return vcs.DiffAdded
	case gitlib.Deleted:
		return vcs.DiffDeleted
	case gitlib.Renamed:
		return vcs.DiffRenamed
	case gitlib.Copied:
		return vcs.DiffCopied
	default:
		return vcs.DiffModified
	}
}
