// Package gitrepo implements a read-only history source for plain git
// repositories using go-git, so the viewer works without jj installed.
//
// To keep the log shaped like jj history, a synthetic working-copy entry
// is placed on top of HEAD; its detail view is the worktree diff.
package gitrepo

import (
	"context"
	"fmt"
	"io"
	"strings"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/thiagokokada/jjk-go/internal/vcs"
)

// workingCopyID is the synthetic commit id of the worktree entry. It can
// never collide with a real hex commit id.
const workingCopyID = "@working-copy"

const shortIDLen = 8

// Source reads history natively from a git repository.
type Source struct {
	repo *gitlib.Repository
	path string
}

// Open opens the git repository containing path.
func Open(path string) (*Source, error) {
	repo, err := gitlib.PlainOpenWithOptions(path, &gitlib.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	root := path
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &Source{repo: repo, path: root}, nil
}

func (s *Source) RepoPath() string {
	return s.path
}

func (s *Source) Snapshot(ctx context.Context, limit int) ([]*vcs.Entry, error) {
	head, err := s.repo.Head()
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}

	entries := []*vcs.Entry{s.workingCopyEntry(head.Hash())}
	more, err := s.collect(ctx, head.Hash(), "", limit)
	if err != nil {
		return nil, err
	}
	return append(entries, more...), nil
}

func (s *Source) SnapshotAfter(ctx context.Context, afterChangeID string, limit int) ([]*vcs.Entry, error) {
	head, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	return s.collect(ctx, head.Hash(), afterChangeID, limit)
}

// collect walks history from head. With a non-empty anchor it discards
// everything up to and including the anchor commit first.
func (s *Source) collect(ctx context.Context, from plumbing.Hash, anchor string, limit int) ([]*vcs.Entry, error) {
	iter, err := s.repo.Log(&gitlib.LogOptions{From: from, Order: gitlib.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}
	defer iter.Close()

	bookmarks, tagged, err := s.refNamesByHash()
	if err != nil {
		return nil, err
	}

	var entries []*vcs.Entry
	skipping := anchor != ""
	for limit <= 0 || len(entries) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		commit, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("iterate commits: %w", err)
		}
		if skipping {
			if matchesID(commit.Hash, anchor) {
				skipping = false
			}
			continue
		}
		entries = append(entries, newEntry(commit, bookmarks, tagged))
	}
	return entries, nil
}

func (s *Source) workingCopyEntry(head plumbing.Hash) *vcs.Entry {
	description := "(working copy)"
	if wt, err := s.repo.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil && status.IsClean() {
			description = "(working copy, clean)"
		}
	}
	return &vcs.Entry{
		ChangeID:    workingCopyID,
		CommitID:    workingCopyID,
		ParentIDs:   []string{head.String()},
		Timestamp:   "now",
		Description: description,
		WorkingCopy: true,
	}
}

func newEntry(commit *object.Commit, bookmarks map[plumbing.Hash][]string, tagged map[plumbing.Hash]bool) *vcs.Entry {
	parents := make([]string, len(commit.ParentHashes))
	for i, p := range commit.ParentHashes {
		parents[i] = p.String()
	}
	return &vcs.Entry{
		ChangeID:    commit.Hash.String()[:shortIDLen],
		CommitID:    commit.Hash.String(),
		ParentIDs:   parents,
		Author:      commit.Author.Name,
		Timestamp:   relativeTime(commit.Committer.When),
		Description: firstLine(commit.Message),
		Bookmarks:   bookmarks[commit.Hash],
		// Tagged commits are the closest git analog to jj's immutable set.
		Immutable: tagged[commit.Hash],
	}
}

// refNamesByHash maps commit hashes to the short names of local branches
// and tags pointing at them, and reports which hashes carry a tag.
func (s *Source) refNamesByHash() (map[plumbing.Hash][]string, map[plumbing.Hash]bool, error) {
	refs, err := s.repo.References()
	if err != nil {
		return nil, nil, fmt.Errorf("list refs: %w", err)
	}
	defer refs.Close()

	names := make(map[plumbing.Hash][]string)
	tagged := make(map[plumbing.Hash]bool)
	err = refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		if !name.IsBranch() && !name.IsTag() {
			return nil
		}
		names[ref.Hash()] = append(names[ref.Hash()], name.Short())
		if name.IsTag() {
			tagged[ref.Hash()] = true
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("list refs: %w", err)
	}
	return names, tagged, nil
}

func matchesID(hash plumbing.Hash, id string) bool {
	return id != "" && strings.HasPrefix(hash.String(), id)
}

func firstLine(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}

var _ vcs.Source = (*Source)(nil)
