package gitrepo

import (
	"strings"
	"testing"
	"time"
)

func TestRelativeTime(t *testing.T) {
	now := time.Now()
	cases := []struct {
		when time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "10 seconds ago"},
		{now.Add(-1 * time.Minute), "1 minute ago"},
		{now.Add(-3 * time.Hour), "3 hours ago"},
		{now.Add(-48 * time.Hour), "2 days ago"},
		{now.Add(-14 * 24 * time.Hour), "2 weeks ago"},
		{now.Add(-70 * 24 * time.Hour), "2 months ago"},
		{now.Add(-800 * 24 * time.Hour), "2 years ago"},
	}
	for _, tc := range cases {
		if got := relativeTime(tc.when); got != tc.want {
			t.Errorf("relativeTime(%v) = %q, want %q", tc.when, got, tc.want)
		}
	}
}

func TestRelativeTimeFutureClampsToNow(t *testing.T) {
	got := relativeTime(time.Now().Add(time.Hour))
	if !strings.HasSuffix(got, "seconds ago") && got != "0 seconds ago" {
		t.Errorf("future timestamp rendered as %q", got)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("subject\n\nbody"); got != "subject" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("no newline"); got != "no newline" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine(""); got != "" {
		t.Errorf("firstLine = %q", got)
	}
}

func TestMatchesID(t *testing.T) {
	hash := hashOf(t, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	if !matchesID(hash, "aaaaaaaa") {
		t.Error("prefix did not match")
	}
	if matchesID(hash, "bbbb") {
		t.Error("wrong prefix matched")
	}
	if matchesID(hash, "") {
		t.Error("empty id matched")
	}
}

func TestWorkingCopyIDNeverCollides(t *testing.T) {
	// Real ids are hex; the synthetic id must stay outside that space.
	if !strings.ContainsAny(workingCopyID, "@") {
		t.Fatalf("working copy id %q looks like a commit hash", workingCopyID)
	}
}
