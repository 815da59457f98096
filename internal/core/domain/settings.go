package domain

// Remote is a remote artifact repository.
type Remote struct {
	Name string
	URL  string
}

// Settings is the user configuration of the tool.
type Settings struct {
	LocalRepository string
	Remotes         []Remote
	OperationsFile  string
	// Extensions are extra unit locations made visible to operation commands.
	Extensions []string
	Prompt     string
}

// DefaultSettings returns the settings used when no settings file exists.
func DefaultSettings() *Settings {
	return &Settings{
		LocalRepository: DefaultRepositoryPath(),
		OperationsFile:  DefaultOperationsPath(),
		Prompt:          DefaultPrompt,
	}
}
