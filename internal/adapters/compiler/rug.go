// Package compiler provides the script source compilers.
package compiler

import (
	"context"
	"encoding/json"
	"path"
	"regexp"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// RugName is the name of the operation source compiler.
const RugName = "rug"

var validName = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Rug compiles .rug operation sources into operation descriptors under .atomist/target.
type Rug struct{}

// NewRug creates a new Rug compiler.
func NewRug() *Rug {
	return &Rug{}
}

// Name returns the compiler name.
func (c *Rug) Name() string {
	return RugName
}

// Extensions returns the accepted source suffixes.
func (c *Rug) Extensions() []string {
	return []string{".rug"}
}

// Compile validates the source at p and emits .atomist/target/<kind>s/<name>.json.
func (c *Rug) Compile(_ context.Context, p string, content []byte) ([]domain.SourceFile, error) {
	var src OperationSource
	if err := yaml.Unmarshal(content, &src); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid operation source"), "path", p)
	}

	if src.Name == "" {
		src.Name = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if !validName.MatchString(src.Name) {
		return nil, zerr.With(zerr.New("invalid operation name"), "name", src.Name)
	}

	kind, ok := domain.ParseOperationKind(src.Kind)
	if !ok {
		return nil, zerr.With(zerr.New("unknown operation kind"), "kind", src.Kind)
	}

	op := domain.Operation{
		Kind:        kind,
		Name:        src.Name,
		Description: strings.TrimSpace(src.Description),
		Tags:        src.Tags,
		Command:     src.Command,
		Source:      p,
	}

	seen := make(map[string]bool, len(src.Parameters))
	for _, dto := range src.Parameters {
		if dto.Name == "" {
			return nil, zerr.New("parameter has no name")
		}
		if seen[dto.Name] {
			return nil, zerr.With(zerr.New("duplicate parameter"), "parameter", dto.Name)
		}
		seen[dto.Name] = true

		if dto.Pattern != "" {
			if _, err := regexp.Compile(dto.Pattern); err != nil {
				return nil, zerr.With(zerr.Wrap(err, "invalid parameter pattern"), "parameter", dto.Name)
			}
		}
		op.Parameters = append(op.Parameters, domain.Parameter{
			Name:        dto.Name,
			Description: dto.Description,
			Pattern:     dto.Pattern,
			Default:     dto.Default,
			Required:    dto.Required,
		})
	}

	if kind == domain.KindGenerator && !seen[domain.ProjectNameParameter] {
		op.Parameters = append(op.Parameters, domain.Parameter{
			Name:        domain.ProjectNameParameter,
			Description: "Name of the project to create",
			Required:    true,
		})
	}

	data, err := json.MarshalIndent(op, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode operation")
	}

	return []domain.SourceFile{{
		Path:    OperationPath(kind, op.Name),
		Content: append(data, '\n'),
	}}, nil
}

// OperationPath returns the compiled location of an operation.
func OperationPath(kind domain.OperationKind, name string) string {
	return path.Join(domain.TargetDir, kind.Plural(), name+".json")
}
