package ports

import "go.trai.ch/rig/internal/core/domain"

// ConfigLoader loads the manifest driving a configuration pass.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given working directory.
	Load(cwd string) (*domain.Manifest, error)
}
