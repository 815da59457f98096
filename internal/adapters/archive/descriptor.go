package archive

import (
	"github.com/janekdb/rug-cli/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DescriptorFile represents the manifest and repository descriptor format.
type DescriptorFile struct {
	Group        string   `yaml:"group"`
	Artifact     string   `yaml:"artifact"`
	Version      string   `yaml:"version"`
	Requires     string   `yaml:"requires,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty"`
}

// ParseDescriptor decodes a manifest or repository descriptor.
func ParseDescriptor(data []byte) (*domain.Descriptor, error) {
	var file DescriptorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(domain.ErrMalformedArchive, err.Error())
	}
	if file.Group == "" || file.Artifact == "" || file.Version == "" {
		return nil, zerr.Wrap(domain.ErrMalformedArchive, "descriptor must declare group, artifact and version")
	}
	if _, err := domain.ParseRequirement(file.Requires); err != nil {
		return nil, err
	}

	desc := &domain.Descriptor{
		Coordinate: domain.Coordinate{
			Group:     file.Group,
			Artifact:  file.Artifact,
			Version:   file.Version,
			Extension: domain.ExtensionZip,
		},
		Requires: file.Requires,
	}
	for _, dep := range file.Dependencies {
		c, err := domain.ParseCoordinate(dep)
		if err != nil {
			return nil, zerr.With(err, "dependency", dep)
		}
		desc.Dependencies = append(desc.Dependencies, c)
	}
	return desc, nil
}

// MarshalDescriptor encodes desc in the descriptor format.
func MarshalDescriptor(desc *domain.Descriptor) ([]byte, error) {
	file := DescriptorFile{
		Group:    desc.Coordinate.Group,
		Artifact: desc.Coordinate.Artifact,
		Version:  desc.Coordinate.Version,
		Requires: desc.Requires,
	}
	for _, dep := range desc.Dependencies {
		file.Dependencies = append(file.Dependencies, dep.String())
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode descriptor")
	}
	return data, nil
}
