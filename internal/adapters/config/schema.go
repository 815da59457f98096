package config

// SettingsFile represents the structure of the cli.yml settings file.
type SettingsFile struct {
	LocalRepository string      `yaml:"local-repository"`
	Remotes         []RemoteDTO `yaml:"remote-repositories"`
	OperationsFile  string      `yaml:"operations-file"`
	Extensions      []string    `yaml:"extensions"`
	Prompt          string      `yaml:"prompt"`
}

// RemoteDTO represents one remote repository entry.
type RemoteDTO struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}
