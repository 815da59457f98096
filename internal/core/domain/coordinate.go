package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Archive extensions.
const (
	// ExtensionZip marks a zip-packaged artifact, or a local directory in the same layout.
	ExtensionZip = "zip"
	// ExtensionJar marks a runtime library unit.
	ExtensionJar = "jar"
)

// VersionLatest is the symbolic version resolved to the highest available version.
const VersionLatest = "latest"

// Identity is the (group, artifact) pair used for override and deduplication.
type Identity struct {
	Group    string
	Artifact string
}

// String returns "group:artifact".
func (id Identity) String() string {
	return id.Group + ":" + id.Artifact
}

// Coordinate addresses one artifact. All fields together form its full identity.
type Coordinate struct {
	Group     string
	Artifact  string
	Version   string
	Extension string
	// Location is an absolute path to the archive file or, for local artifacts, the directory.
	Location string
	// Local marks an artifact backed by editable, unpublished storage.
	Local bool
}

// ParseCoordinate parses "group:artifact[:version]".
// A missing version is reported as VersionLatest.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, zerr.With(zerr.Wrap(ErrInvalidCoordinate, "failed to parse coordinate"), "coordinate", s)
	}

	c := Coordinate{
		Group:     parts[0],
		Artifact:  parts[1],
		Version:   VersionLatest,
		Extension: ExtensionZip,
	}
	if len(parts) == 3 && parts[2] != "" {
		c.Version = parts[2]
	}
	return c, nil
}

// Identity returns the (group, artifact) identity.
func (c Coordinate) Identity() Identity {
	return Identity{Group: c.Group, Artifact: c.Artifact}
}

// String returns "group:artifact:version".
func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact + ":" + c.Version
}

// IsSymbolic reports whether the version still needs resolving to a concrete value.
func (c Coordinate) IsSymbolic() bool {
	return c.Version == "" || c.Version == VersionLatest || IsRange(c.Version)
}

// WithVersion returns a copy with the version replaced.
func (c Coordinate) WithVersion(v string) Coordinate {
	c.Version = v
	return c
}

// Descriptor is the published metadata of an artifact.
type Descriptor struct {
	Coordinate Coordinate
	// Requires is the runtime version range the artifact accepts. Empty accepts any runtime.
	Requires     string
	Dependencies []Coordinate
}
