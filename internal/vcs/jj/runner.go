// Package jj implements the history source backed by the jj executable.
package jj

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// ErrNotInstalled reports that no jj executable was found on PATH.
var ErrNotInstalled = errors.New("jj executable not found in PATH")

// Runner executes jj commands in a fixed working directory.
type Runner struct {
	workDir string
}

// NewRunner creates a runner rooted at dir. An empty dir runs jj in the
// process working directory.
func NewRunner(dir string) *Runner {
	return &Runner{workDir: dir}
}

// WorkDir returns the directory jj commands run in.
func (r *Runner) WorkDir() string {
	return r.workDir
}

// RunCapture runs jj with the given arguments and returns stdout.
// A non-zero exit turns the trimmed stderr into the error.
func (r *Runner) RunCapture(ctx context.Context, args ...string) (string, error) {
	stdout, stderr, err := r.execute(ctx, args)
	if err != nil {
		if stderr != "" {
			return "", fmt.Errorf("jj %s: %s", commandName(args), stderr)
		}
		return "", fmt.Errorf("jj %s: %w", commandName(args), err)
	}
	return stdout, nil
}

// IsAvailable reports whether jj can be executed at all.
func (r *Runner) IsAvailable() bool {
	err := exec.Command("jj", "--version").Run()
	return err == nil
}

func (r *Runner) execute(ctx context.Context, args []string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, "jj", args...)
	if r.workDir != "" {
		cmd.Dir = r.workDir
	}
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	err = cmd.Run()
	stderr = strings.TrimSpace(errBuf.String())
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrNotInstalled
		}
		slog.Debug("jj command failed",
			slog.String("command", commandName(args)),
			slog.String("stderr", stderr),
		)
		return "", stderr, err
	}
	return out.String(), stderr, nil
}

// runCommand runs a mutating jj command and folds the outcome into a
// CommandResult instead of an error: a failed jj invocation is a normal
// result the UI reports, not a fault.
func (r *Runner) runCommand(ctx context.Context, name string, args ...string) (success bool, message string) {
	stdout, stderr, err := r.execute(ctx, args)
	if err != nil {
		if stderr != "" {
			return false, stderr
		}
		return false, err.Error()
	}
	// jj writes human-readable status to stderr even on success.
	msg := strings.TrimSpace(stdout)
	if msg == "" {
		msg = stderr
	}
	if msg == "" {
		msg = name + " done"
	}
	return true, msg
}

func commandName(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
