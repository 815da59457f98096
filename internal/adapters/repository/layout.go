package repository

import (
	"path"
	"slices"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const indexFile = "index.yml"

// Index represents the version list of one artifact.
type Index struct {
	Versions []string `yaml:"versions"`
}

func parseIndex(data []byte) (*Index, error) {
	var idx Index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, zerr.Wrap(err, "failed to parse repository index")
	}
	return &idx, nil
}

// add inserts v keeping the versions in ascending semver order.
func (i *Index) add(v string) {
	if slices.Contains(i.Versions, v) {
		return
	}
	i.Versions = append(i.Versions, v)
	slices.SortFunc(i.Versions, domain.CompareVersions)
}

// artifactDir returns the slash path of an artifact below a repository root.
func artifactDir(id domain.Identity) string {
	return path.Join(strings.ReplaceAll(id.Group, ".", "/"), id.Artifact)
}

func indexPath(id domain.Identity) string {
	return path.Join(artifactDir(id), indexFile)
}

func versionDir(c domain.Coordinate) string {
	return path.Join(artifactDir(c.Identity()), c.Version)
}

func descriptorPath(c domain.Coordinate) string {
	return path.Join(versionDir(c), c.Artifact+"-"+c.Version+".yml")
}

func archivePath(c domain.Coordinate) string {
	return path.Join(versionDir(c), c.Artifact+"-"+c.Version+"."+domain.ExtensionZip)
}

func checksumPath(c domain.Coordinate) string {
	return archivePath(c) + ".sha256"
}
