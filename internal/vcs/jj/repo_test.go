package jj

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindRepoNotFound(t *testing.T) {
	if _, ok := FindRepo(t.TempDir()); ok {
		t.Fatal("found a repository in an empty directory")
	}
}

func TestFindRepoInRoot(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".jj"), 0o755); err != nil {
		t.Fatal(err)
	}
	repo, ok := FindRepo(dir)
	if !ok {
		t.Fatal("repository not found")
	}
	if repo.Root != dir {
		t.Errorf("root = %q, want %q", repo.Root, dir)
	}
	if repo.Colocated {
		t.Error("repo reported colocated without .git")
	}
}

func TestFindRepoInSubdirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, ".jj"), 0o755); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "src", "lib")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	repo, ok := FindRepo(sub)
	if !ok {
		t.Fatal("repository not found from subdirectory")
	}
	if repo.Root != dir {
		t.Errorf("root = %q, want %q", repo.Root, dir)
	}
}

func TestFindRepoColocated(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".jj", ".git"} {
		if err := os.Mkdir(filepath.Join(dir, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	repo, ok := FindRepo(dir)
	if !ok {
		t.Fatal("repository not found")
	}
	if !repo.Colocated {
		t.Error("colocated repo not detected")
	}
}
