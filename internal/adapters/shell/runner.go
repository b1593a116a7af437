// Package shell provides the external command runner adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"sort"
	"strings"

	"go.trai.ch/rig/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CommandRunner = (*Runner)(nil)

// Runner implements ports.CommandRunner using os/exec.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
	}
}

// Run executes the command and waits for it to exit. Stdout is captured into
// the result so callers can compose output (report concatenation, file
// listings); stderr is streamed line by line into the logger. The child
// inherits the parent environment with cmd.Env overlaid on top.
func (r *Runner) Run(ctx context.Context, cmd ports.Command) (ports.Result, error) {
	if len(cmd.Argv) == 0 {
		return ports.Result{}, zerr.New("empty command")
	}

	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...) //nolint:gosec // command comes from the manifest
	c.Dir = cmd.Dir
	c.Env = overlayEnvironment(os.Environ(), cmd.Env)

	var stdout bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &logWriter{logger: r.logger}

	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// A non-zero exit is an observation, not a runner failure.
			return ports.Result{ExitCode: exitErr.ExitCode(), Stdout: stdout.Bytes()}, nil
		}
		return ports.Result{}, zerr.With(zerr.Wrap(err, "failed to start command"), "command", cmd.Argv[0])
	}

	return ports.Result{ExitCode: 0, Stdout: stdout.Bytes()}, nil
}

type logWriter struct {
	logger ports.Logger
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	lines := strings.Split(strings.TrimSuffix(string(p), "\n"), "\n")
	for _, line := range lines {
		if line != "" {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}

// overlayEnvironment merges the overlay onto the base KEY=VALUE environment,
// later entries winning.
func overlayEnvironment(base []string, overlay map[string]string) []string {
	if len(overlay) == 0 {
		return base
	}

	envMap := make(map[string]string, len(base)+len(overlay))
	var order []string
	for _, entry := range base {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = v
	}
	keys := make([]string, 0, len(overlay))
	for k := range overlay {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, seen := envMap[k]; !seen {
			order = append(order, k)
		}
		envMap[k] = overlay[k]
	}

	result := make([]string, 0, len(order))
	for _, k := range order {
		result = append(result, k+"="+envMap[k])
	}
	return result
}
