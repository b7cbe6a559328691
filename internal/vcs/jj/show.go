package jj

import (
	"context"
	"fmt"
	"strings"

	"github.com/thiagokokada/jjk-go/internal/vcs"
)

// showTemplate carries the full description, which may itself contain
// newlines, so the whole output is split on \x00 rather than per line.
const showTemplate = `change_id ++ "\x00" ++ commit_id ++ "\x00" ++ author.name() ++ "\x00" ++ committer.timestamp().ago() ++ "\x00" ++ description ++ "\x00" ++ bookmarks.join(",") ++ "\n"`

const showFieldCount = 6

// fetchShow assembles the detail view for one revision: metadata, the
// changed-file summary, and the unified diff text.
func fetchShow(ctx context.Context, runner *Runner, revision string) (*vcs.ShowOutput, error) {
	metaOut, err := runner.RunCapture(ctx, "log", "-r", revision, "--no-graph", "-T", showTemplate)
	if err != nil {
		return nil, err
	}
	show, err := parseShowMeta(metaOut)
	if err != nil {
		return nil, err
	}

	summaryOut, err := runner.RunCapture(ctx, "diff", "-r", revision, "--summary")
	if err != nil {
		return nil, err
	}
	show.Summary = parseDiffSummary(summaryOut)

	diffOut, err := runner.RunCapture(ctx, "diff", "-r", revision, "--git")
	if err != nil {
		return nil, err
	}
	show.Diff = diffOut
	return show, nil
}

func parseShowMeta(out string) (*vcs.ShowOutput, error) {
	out = strings.TrimSuffix(out, "\n")
	parts := strings.Split(out, "\x00")
	if len(parts) < showFieldCount {
		return nil, fmt.Errorf("unexpected show output: expected %d fields, got %d", showFieldCount, len(parts))
	}
	return &vcs.ShowOutput{
		ChangeID:    parts[0],
		CommitID:    parts[1],
		Author:      parts[2],
		Timestamp:   parts[3],
		Description: strings.TrimRight(parts[4], "\n"),
		Bookmarks:   splitBookmarks(parts[5]),
	}, nil
}

// parseDiffSummary parses `jj diff --summary` lines of the form
// "M path/to/file".
func parseDiffSummary(out string) []vcs.DiffEntry {
	var entries []vcs.DiffEntry
	for _, line := range strings.Split(out, "\n") {
		status, path, ok := strings.Cut(line, " ")
		if !ok || path == "" {
			continue
		}
		var st vcs.DiffStatus
		switch status {
		case "A":
			st = vcs.DiffAdded
		case "M":
			st = vcs.DiffModified
		case "D":
			st = vcs.DiffDeleted
		case "R":
			st = vcs.DiffRenamed
		case "C":
			st = vcs.DiffCopied
		default:
			continue
		}
		entries = append(entries, vcs.DiffEntry{Status: st, Path: path})
	}
	return entries
}
