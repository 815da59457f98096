package compiler

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/joho/godotenv"
	"go.trai.ch/zerr"
)

// DefaultsName is the name of the parameter defaults compiler.
const DefaultsName = "defaults"

// DefaultsDir holds compiled parameter defaults relative to the artifact root.
const DefaultsDir = domain.TargetDir + "/defaults"

// Defaults compiles .env files into parameter default maps.
type Defaults struct{}

// NewDefaults creates a new Defaults compiler.
func NewDefaults() *Defaults {
	return &Defaults{}
}

// Name returns the compiler name.
func (c *Defaults) Name() string {
	return DefaultsName
}

// Extensions returns the accepted source suffixes.
func (c *Defaults) Extensions() []string {
	return []string{".env"}
}

// Compile parses the dotenv source at p and emits .atomist/target/defaults/<base>.json.
func (c *Defaults) Compile(_ context.Context, p string, content []byte) ([]domain.SourceFile, error) {
	values, err := godotenv.UnmarshalBytes(content)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid defaults file"), "path", p)
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to encode defaults")
	}

	base := strings.TrimSuffix(path.Base(p), path.Ext(p))
	if base == "" {
		base = "default"
	}
	return []domain.SourceFile{{
		Path:    path.Join(DefaultsDir, base+".json"),
		Content: append(data, '\n'),
	}}, nil
}
