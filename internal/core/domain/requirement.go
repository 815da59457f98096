package domain

import (
	"strings"

	"go.trai.ch/zerr"
	"golang.org/x/mod/semver"
)

// Requirement is a version range in interval notation, e.g. "[1.0.0,2.0.0)".
// A bare version means "this version or newer". The empty requirement admits every version.
type Requirement struct {
	raw       string
	lower     string
	upper     string
	lowerIncl bool
	upperIncl bool
}

// IsRange reports whether s uses interval notation.
func IsRange(s string) bool {
	return strings.HasPrefix(s, "[") || strings.HasPrefix(s, "(")
}

// CanonicalVersion returns v in semver form with a leading "v", or "" if v is not a valid version.
func CanonicalVersion(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return ""
	}
	return semver.Canonical(v)
}

// CompareVersions compares two versions by semver precedence.
// Invalid versions sort before valid ones.
func CompareVersions(a, b string) int {
	return semver.Compare(CanonicalVersion(a), CanonicalVersion(b))
}

// ParseRequirement parses a version requirement.
func ParseRequirement(s string) (Requirement, error) {
	s = strings.TrimSpace(s)
	r := Requirement{raw: s}
	if s == "" {
		return r, nil
	}

	invalid := func() (Requirement, error) {
		return Requirement{}, zerr.With(zerr.Wrap(ErrInvalidRequirement, "failed to parse requirement"), "requirement", s)
	}

	if !IsRange(s) {
		if CanonicalVersion(s) == "" {
			return invalid()
		}
		r.lower, r.lowerIncl = s, true
		return r, nil
	}

	if len(s) < 3 {
		return invalid()
	}
	open, end := s[0], s[len(s)-1]
	if end != ']' && end != ')' {
		return invalid()
	}
	r.lowerIncl = open == '['
	r.upperIncl = end == ']'

	bounds := strings.Split(s[1:len(s)-1], ",")
	switch len(bounds) {
	case 1:
		// "[1.0.0]" pins an exact version.
		if !r.lowerIncl || !r.upperIncl {
			return invalid()
		}
		v := strings.TrimSpace(bounds[0])
		if CanonicalVersion(v) == "" {
			return invalid()
		}
		r.lower, r.upper = v, v
	case 2:
		r.lower = strings.TrimSpace(bounds[0])
		r.upper = strings.TrimSpace(bounds[1])
		if r.lower != "" && CanonicalVersion(r.lower) == "" {
			return invalid()
		}
		if r.upper != "" && CanonicalVersion(r.upper) == "" {
			return invalid()
		}
		if r.lower == "" && r.upper == "" {
			return invalid()
		}
	default:
		return invalid()
	}
	return r, nil
}

// Allows reports whether version satisfies the requirement.
func (r Requirement) Allows(version string) bool {
	v := CanonicalVersion(version)
	if v == "" {
		return false
	}
	if r.lower != "" {
		c := semver.Compare(v, CanonicalVersion(r.lower))
		if c < 0 || (c == 0 && !r.lowerIncl) {
			return false
		}
	}
	if r.upper != "" {
		c := semver.Compare(v, CanonicalVersion(r.upper))
		if c > 0 || (c == 0 && !r.upperIncl) {
			return false
		}
	}
	return true
}

// String returns the requirement as written.
func (r Requirement) String() string {
	return r.raw
}

// CheckRuntime verifies that the artifact accepts the given runtime version.
func (d *Descriptor) CheckRuntime(runtimeVersion string) error {
	req, err := ParseRequirement(d.Requires)
	if err != nil {
		return zerr.With(err, "artifact", d.Coordinate.String())
	}
	if !req.Allows(runtimeVersion) {
		err := zerr.With(zerr.Wrap(ErrIncompatibleRuntime, "artifact requires "+req.String()+" but runtime is "+runtimeVersion), "artifact", d.Coordinate.String())
		return zerr.With(err, "requires", d.Requires)
	}
	return nil
}
