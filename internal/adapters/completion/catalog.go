// Package completion publishes the operations of the loaded artifact and answers shell completion queries from them.
package completion

import (
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/janekdb/rug-cli/internal/adapters/fs"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/tidwall/gjson"
	"go.trai.ch/zerr"
)

// commandKinds maps operation commands to the kind they run.
var commandKinds = map[string]domain.OperationKind{
	"edit":     domain.KindEditor,
	"generate": domain.KindGenerator,
	"execute":  domain.KindExecutor,
	"review":   domain.KindReviewer,
}

var describeTargets = []string{"archive", "editor", "executor", "generator", "reviewer"}

// Catalog implements ports.Catalog and ports.Completer over the operations file.
// The file is re-read only when its modification time advances.
type Catalog struct {
	path     string
	commands []string

	mu      sync.Mutex
	modTime time.Time
	doc     string
}

// NewCatalog creates a Catalog backed by path.
func NewCatalog(path string) *Catalog {
	c := &Catalog{path: path}
	c.SetCommands(nil)
	return c
}

// SetCommands sets the first-word completions offered in addition to the shell meta commands.
func (c *Catalog) SetCommands(commands []string) {
	words := append(slices.Clone(commands), "clear", "exit", "quit")
	slices.Sort(words)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.commands = slices.Compact(words)
}

type entry struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters,omitempty"`
}

// Publish writes the operations of units to the catalog file.
func (c *Catalog) Publish(units *domain.LoadedUnits) error {
	doc := make(map[string][]entry, len(domain.OperationKinds))
	for _, kind := range domain.OperationKinds {
		if kind == domain.KindHandler {
			continue
		}
		entries := []entry{}
		for _, op := range units.ByKind(kind) {
			e := entry{Name: op.Name}
			for _, p := range op.Parameters {
				e.Parameters = append(e.Parameters, p.Name)
			}
			entries = append(entries, e)
		}
		doc[kind.Plural()] = entries
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrCatalogWriteFailed, err.Error())
	}
	if err := fs.WriteFileAtomic(c.path, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCatalogWriteFailed, err.Error()), "path", c.path)
	}
	return nil
}

// Complete returns the candidates for the last word of line.
func (c *Catalog) Complete(line string) []string {
	words := strings.Fields(line)
	if line == "" || strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") {
		words = append(words, "")
	}
	current := len(words) - 1

	if current == 0 {
		c.mu.Lock()
		defer c.mu.Unlock()
		return slices.Clone(c.commands)
	}

	doc := c.document()
	if doc == "" {
		return nil
	}

	command := words[0]
	if command == "describe" {
		switch current {
		case 1:
			return describeTargets
		case 2:
			kind, ok := domain.ParseOperationKind(words[1])
			if !ok {
				return nil
			}
			return names(doc, kind)
		}
		return nil
	}

	kind, ok := commandKinds[command]
	if !ok {
		return nil
	}
	if current == 1 {
		return names(doc, kind)
	}
	return parameters(doc, kind, words[1], words[2:current])
}

func names(doc string, kind domain.OperationKind) []string {
	var out []string
	for _, r := range gjson.Get(doc, kind.Plural()+".#.name").Array() {
		out = append(out, r.String())
	}
	return out
}

func parameters(doc string, kind domain.OperationKind, name string, given []string) []string {
	used := make(map[string]bool, len(given))
	for _, g := range given {
		if k, _, ok := strings.Cut(g, "="); ok {
			used[k] = true
		}
	}

	op := gjson.Get(doc, kind.Plural()+`.#(name=="`+escape(name)+`")`)
	if !op.Exists() {
		return nil
	}

	var out []string
	for _, p := range op.Get("parameters").Array() {
		param := p.String()
		if used[param] || (kind == domain.KindGenerator && param == domain.ProjectNameParameter) {
			continue
		}
		out = append(out, param+"=")
	}
	return out
}

// escape quotes characters that are special inside a gjson query value.
func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

// document returns the catalog content, reloading it if the file changed since the last read.
func (c *Catalog) document() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := os.Stat(c.path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			c.doc, c.modTime = "", time.Time{}
		}
		return c.doc
	}
	if !info.ModTime().After(c.modTime) {
		return c.doc
	}

	data, err := os.ReadFile(c.path)
	if err != nil || !gjson.ValidBytes(data) {
		return c.doc
	}
	c.doc, c.modTime = string(data), info.ModTime()
	return c.doc
}
