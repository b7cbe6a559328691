package jj

import (
	"os"
	"path/filepath"
)

// Repo describes a discovered jj repository.
type Repo struct {
	// Root is the directory containing .jj.
	Root string
	// Colocated is true when the root also holds a .git directory.
	Colocated bool
}

// FindRepo walks up from start looking for a .jj directory.
// It returns false when no repository is found.
func FindRepo(start string) (Repo, bool) {
	current, err := filepath.Abs(start)
	if err != nil {
		return Repo{}, false
	}
	for {
		if isDir(filepath.Join(current, ".jj")) {
			_, gitErr := os.Stat(filepath.Join(current, ".git"))
			return Repo{Root: current, Colocated: gitErr == nil}, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return Repo{}, false
		}
		current = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
