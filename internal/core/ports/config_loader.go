package ports

import "github.com/janekdb/rug-cli/internal/core/domain"

// ConfigLoader reads CLI settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the settings file at path. A missing file yields the defaults.
	Load(path string) (*domain.Settings, error)
}
