package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// commandTimeout bounds a single taxsync invocation
const commandTimeout = 30 * time.Second

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// CommandResult holds what one taxsync invocation produced
type CommandResult struct {
	ExitCode int
	Stderr   string
	Stdout   string
}

// String renders the result for assertion messages.
func (r CommandResult) String() string {
	return fmt.Sprintf("exit: %d\nstdout: %s\nstderr: %s", r.ExitCode, r.Stdout, r.Stderr)
}

// BuildBinary compiles taxsync into a temporary directory, once per test run.
func BuildBinary() (string, error) {
	buildOnce.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			buildErr = err
			return
		}

		dir, err := os.MkdirTemp("", "taxsync-integration-*")
		if err != nil {
			buildErr = err
			return
		}
		binaryPath = filepath.Join(dir, "taxsync")

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = root
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		buildErr = cmd.Run()
	})

	return binaryPath, buildErr
}

// CleanupBinary removes the directory BuildBinary created.
func CleanupBinary() {
	if binaryPath == "" {
		return
	}
	if err := os.RemoveAll(filepath.Dir(binaryPath)); err != nil {
		log.Printf("failed to remove %s: %v", filepath.Dir(binaryPath), err)
	}
}

// RunCommand runs taxsync with args inside env. A run that outlives
// commandTimeout is killed and reported with exit code -1.
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = env.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := CommandResult{}
	var exitErr *exec.ExitError
	switch err := cmd.Run(); {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		tb.Logf("taxsync %s timed out after %v", strings.Join(args, " "), commandTimeout)
		result.ExitCode = -1
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Logf("taxsync %s could not run: %v", strings.Join(args, " "), err)
		result.ExitCode = -1
	}

	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	return result
}

func moduleRoot() (string, error) {
	out, err := exec.Command("go", "list", "-m", "-f", "{{.Dir}}").Output()
	if err != nil {
		return "", fmt.Errorf("locate module root: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
