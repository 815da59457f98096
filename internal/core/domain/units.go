package domain

import (
	"regexp"
	"strings"

	"go.trai.ch/zerr"
)

// OperationKind is the kind of an operation exposed by an artifact.
type OperationKind string

const (
	KindEditor    OperationKind = "editor"
	KindGenerator OperationKind = "generator"
	KindExecutor  OperationKind = "executor"
	KindReviewer  OperationKind = "reviewer"
	KindHandler   OperationKind = "handler"
)

// OperationKinds lists the kinds in catalog order.
var OperationKinds = []OperationKind{KindEditor, KindGenerator, KindExecutor, KindReviewer, KindHandler}

// ParseOperationKind accepts singular or plural kind names.
func ParseOperationKind(s string) (OperationKind, bool) {
	s = strings.TrimSuffix(strings.ToLower(s), "s")
	for _, k := range OperationKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// Plural returns the catalog key of the kind, e.g. "editors".
func (k OperationKind) Plural() string {
	return string(k) + "s"
}

// ProjectNameParameter is the parameter generators take positionally.
const ProjectNameParameter = "project_name"

// Parameter describes one operation parameter.
type Parameter struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Pattern     string `json:"pattern,omitempty"`
	Default     string `json:"default,omitempty"`
	Required    bool   `json:"required,omitempty"`
}

// Operation is one callable unit of a loaded artifact.
type Operation struct {
	Kind        OperationKind `json:"kind"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Parameters  []Parameter   `json:"parameters,omitempty"`
	Command     []string      `json:"command,omitempty"`
	Source      string        `json:"source"`
}

// Bind applies defaults and validates the supplied values.
// The returned map holds a value for every parameter that has one.
func (o Operation) Bind(values map[string]string) (map[string]string, error) {
	bound := make(map[string]string, len(o.Parameters))
	for _, p := range o.Parameters {
		v, ok := values[p.Name]
		if !ok || v == "" {
			v = p.Default
		}
		if v == "" {
			if p.Required {
				return nil, zerr.With(zerr.Wrap(ErrMissingParameter, "parameter has no value"), "parameter", p.Name)
			}
			continue
		}
		if p.Pattern != "" {
			re, err := regexp.Compile(p.Pattern)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "invalid parameter pattern"), "parameter", p.Name)
			}
			if !re.MatchString(v) {
				err := zerr.With(zerr.Wrap(ErrInvalidParameter, "value does not match pattern"), "parameter", p.Name)
				return nil, zerr.With(err, "pattern", p.Pattern)
			}
		}
		bound[p.Name] = v
	}
	return bound, nil
}

// LoadedUnits holds the operations and handlers extracted from a compiled artifact.
// It belongs to the single invocation that produced it.
type LoadedUnits struct {
	Operations []Operation
	Handlers   []Operation
}

// Find returns the operation of the given kind and name.
func (u *LoadedUnits) Find(kind OperationKind, name string) (Operation, bool) {
	for _, op := range u.ByKind(kind) {
		if op.Name == name {
			return op, true
		}
	}
	return Operation{}, false
}

// ByKind returns the operations of one kind in load order.
func (u *LoadedUnits) ByKind(kind OperationKind) []Operation {
	if u == nil {
		return nil
	}
	src := u.Operations
	if kind == KindHandler {
		src = u.Handlers
	}
	var out []Operation
	for _, op := range src {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
