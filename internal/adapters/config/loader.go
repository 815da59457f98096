// Package config provides the settings loader.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the settings file at path. A missing file yields the defaults.
func (l *Loader) Load(path string) (*domain.Settings, error) {
	settings := domain.DefaultSettings()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file SettingsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}

	if file.LocalRepository != "" {
		settings.LocalRepository = expandPath(file.LocalRepository)
	}
	if file.OperationsFile != "" {
		settings.OperationsFile = expandPath(file.OperationsFile)
	}
	if file.Prompt != "" {
		settings.Prompt = file.Prompt
	}

	for i, r := range file.Remotes {
		if r.URL == "" {
			err := zerr.Wrap(domain.ErrConfigParseFailed, "remote repository has no url")
			return nil, zerr.With(zerr.With(err, "path", path), "index", i)
		}
		name := r.Name
		if name == "" {
			name = r.URL
		}
		settings.Remotes = append(settings.Remotes, domain.Remote{
			Name: name,
			URL:  strings.TrimSuffix(os.ExpandEnv(r.URL), "/"),
		})
	}

	for _, ext := range file.Extensions {
		p := expandPath(ext)
		if _, err := os.Stat(p); err != nil && l.Logger != nil {
			l.Logger.Warn("extension location not found: " + p)
		}
		settings.Extensions = append(settings.Extensions, p)
	}

	return settings, nil
}

// expandPath expands environment variables and a leading "~".
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return filepath.Clean(p)
}
