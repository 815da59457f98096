package domain

import (
	"os"
	"path/filepath"
)

const (
	// DirPerm is the default permission for directories created by the tool.
	DirPerm = 0o750
	// FilePerm is the default permission for files created by the tool.
	FilePerm = 0o644
)

const (
	// MetadataDir holds the manifest and operation sources of an artifact.
	MetadataDir = ".atomist"
	// ManifestPath is the manifest location relative to the artifact root.
	ManifestPath = MetadataDir + "/manifest.yml"
	// TargetDir holds compiler output relative to the artifact root.
	TargetDir = MetadataDir + "/target"
	// CacheDir is the compile cache directory relative to the artifact root.
	CacheDir = TargetDir + "/.jscache"
	// DefaultPrompt is the shell prompt when settings do not name one.
	DefaultPrompt = "rug> "
	// SettingsEnvVar overrides the settings file location.
	SettingsEnvVar = "RUG_SETTINGS"
)

// HomeDir returns the per-user tool directory.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return MetadataDir
	}
	return filepath.Join(home, MetadataDir)
}

// DefaultSettingsPath returns the settings file location.
func DefaultSettingsPath() string {
	if p := os.Getenv(SettingsEnvVar); p != "" {
		return p
	}
	return filepath.Join(HomeDir(), "cli.yml")
}

// DefaultRepositoryPath returns the local repository location.
func DefaultRepositoryPath() string {
	return filepath.Join(HomeDir(), "repository")
}

// DefaultOperationsPath returns the operations catalog used for shell completion.
func DefaultOperationsPath() string {
	return filepath.Join(HomeDir(), ".operations.json")
}

// CachePath returns the compile cache directory of a local artifact.
func CachePath(artifactDir string) string {
	return filepath.Join(artifactDir, filepath.FromSlash(CacheDir))
}
