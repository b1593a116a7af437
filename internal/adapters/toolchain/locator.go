// Package toolchain locates external tool binaries on the build host.
package toolchain

import (
	"os/exec"

	"go.trai.ch/rig/internal/core/ports"
)

var _ ports.ToolLocator = (*Locator)(nil)

// Locator implements ports.ToolLocator using PATH lookup.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Find resolves the first candidate present on PATH. Candidates are tried in
// the given order, so callers list the most specific name first.
func (l *Locator) Find(candidates ...string) (string, bool) {
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}
