package compiler

// OperationSource represents the structure of a .rug operation source.
type OperationSource struct {
	Kind        string         `yaml:"kind"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Tags        []string       `yaml:"tags"`
	Parameters  []ParameterDTO `yaml:"parameters"`
	Command     []string       `yaml:"command"`
}

// ParameterDTO represents one declared parameter.
type ParameterDTO struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Pattern     string `yaml:"pattern"`
	Required    bool   `yaml:"required"`
	Default     string `yaml:"default"`
}
