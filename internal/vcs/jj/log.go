package jj

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/thiagokokada/jjk-go/internal/vcs"
)

// logTemplate produces one \x00-separated record per commit. Null bytes
// cannot appear in any field, so splitting is unambiguous. Parent commit
// ids are space-joined inside their field.
const logTemplate = `change_id.short() ++ "\x00" ++ commit_id.short() ++ "\x00" ++ commit_id ++ "\x00" ++ parents.map(|p| p.commit_id()).join(" ") ++ "\x00" ++ author.name() ++ "\x00" ++ committer.timestamp().ago() ++ "\x00" ++ coalesce(description.first_line(), "(no description)") ++ "\x00" ++ current_working_copy ++ "\x00" ++ immutable ++ "\x00" ++ empty ++ "\x00" ++ bookmarks.join(",") ++ "\n"`

const logFieldCount = 11

// fetchLog reads the newest window of history.
func fetchLog(ctx context.Context, runner *Runner, limit int) ([]*vcs.Entry, error) {
	return fetchLogRevset(ctx, runner, "::", limit)
}

// fetchLogAfter reads the page strictly older than the given change id.
func fetchLogAfter(ctx context.Context, runner *Runner, afterChangeID string, limit int) ([]*vcs.Entry, error) {
	if strings.TrimSpace(afterChangeID) == "" {
		return nil, fmt.Errorf("load more: empty anchor change id")
	}
	return fetchLogRevset(ctx, runner, "::"+afterChangeID+"-", limit)
}

func fetchLogRevset(ctx context.Context, runner *Runner, revset string, limit int) ([]*vcs.Entry, error) {
	args := []string{"log", "--no-graph", "-T", logTemplate, "-r", revset}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	out, err := runner.RunCapture(ctx, args...)
	if err != nil {
		return nil, err
	}
	return parseLogOutput(out), nil
}

func parseLogOutput(out string) []*vcs.Entry {
	var entries []*vcs.Entry
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		if entry := parseLogLine(line); entry != nil {
			entries = append(entries, entry)
		}
	}
	return entries
}

// parseLogLine parses one record, or returns nil for malformed lines.
func parseLogLine(line string) *vcs.Entry {
	parts := strings.Split(line, "\x00")
	if len(parts) < logFieldCount {
		return nil
	}
	return &vcs.Entry{
		ChangeID:    parts[0],
		CommitID:    parts[2],
		ParentIDs:   splitParents(parts[3]),
		Author:      parts[4],
		Timestamp:   parts[5],
		Description: parts[6],
		WorkingCopy: parts[7] == "true",
		Immutable:   parts[8] == "true",
		Empty:       parts[9] == "true",
		Bookmarks:   splitBookmarks(parts[10]),
	}
}

func splitParents(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Fields(field)
}

func splitBookmarks(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, ",")
}
