package ports

// ToolLocator resolves external tool binaries on the build host.
//
//go:generate mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type ToolLocator interface {
	// Find returns the resolved path of the first locatable candidate.
	Find(candidates ...string) (string, bool)
}
