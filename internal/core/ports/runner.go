// Package ports defines the core interfaces for the application.
package ports

import "context"

// Command describes one external process invocation.
type Command struct {
	// Argv is the program and its arguments.
	Argv []string
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Env is overlaid on the parent process environment.
	Env map[string]string
}

// Result captures the observable outcome of a finished process. External
// tools are opaque collaborators; the exit code and captured output are the
// whole contract.
type Result struct {
	ExitCode int
	Stdout   []byte
}

// CommandRunner executes external commands synchronously, waiting for the
// child to exit before returning.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run starts the command and waits for it. A non-zero exit is reported
	// through Result.ExitCode, not err; err covers failing to start at all.
	Run(ctx context.Context, cmd Command) (Result, error)
}
