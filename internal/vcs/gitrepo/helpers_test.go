package gitrepo

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
)

func hashOf(t *testing.T, hex string) plumbing.Hash {
	t.Helper()
	return plumbing.NewHash(hex)
}
