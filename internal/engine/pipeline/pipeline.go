// Package pipeline applies the ordered compilers to the source tree of a local artifact.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// VertexName is the progress vertex of compilation.
const VertexName = "Processing script sources"

// Pipeline runs compilers in registration order, each on the output of the previous one.
type Pipeline struct {
	compilers []ports.Compiler
	caches    ports.CacheFactory
	hasher    ports.Hasher
	telemetry ports.Telemetry
}

// New creates a Pipeline over compilers.
func New(compilers []ports.Compiler, caches ports.CacheFactory, hasher ports.Hasher, telemetry ports.Telemetry) *Pipeline {
	return &Pipeline{
		compilers: compilers,
		caches:    caches,
		hasher:    hasher,
		telemetry: telemetry,
	}
}

// Compile returns tree with the output of every applicable compiler added.
// Published artifacts and trees no compiler applies to are returned unchanged.
func (p *Pipeline) Compile(ctx context.Context, artifact domain.Coordinate, tree domain.SourceTree) (domain.SourceTree, error) {
	if !artifact.Local {
		return tree, nil
	}

	var applicable []ports.Compiler
	for _, c := range p.compilers {
		if len(tree.Match(c.Extensions()...)) > 0 {
			applicable = append(applicable, c)
		}
	}
	if len(applicable) == 0 {
		return tree, nil
	}

	ctx, vertex := p.telemetry.Record(ctx, VertexName)
	out, cached, err := p.run(ctx, vertex.Stdout(), artifact, tree, applicable)
	if err != nil {
		vertex.Complete(err)
		return tree, err
	}
	if cached {
		vertex.Cached()
	}
	vertex.Complete(nil)
	return out, nil
}

func (p *Pipeline) run(
	ctx context.Context,
	w io.Writer,
	artifact domain.Coordinate,
	tree domain.SourceTree,
	compilers []ports.Compiler,
) (domain.SourceTree, bool, error) {
	cache, err := p.caches.Open(artifact.Location)
	if err != nil {
		return tree, false, domain.Fail(domain.KindCompilation, "failed to open compile cache", err)
	}

	allCached := true
	current := tree
	for _, c := range compilers {
		cached := NewCachedCompiler(c, cache, p.hasher)
		sources := current.Match(c.Extensions()...)
		_, _ = fmt.Fprintf(w, "Invoking %s on %d script sources\n", c.Name(), len(sources))

		next, err := apply(ctx, cached, current, sources)
		if err != nil {
			return tree, false, err
		}
		report(w, next.DeltaFrom(current))

		if cached.Misses() > 0 {
			allCached = false
		}
		current = next
	}
	return current, allCached, nil
}

// apply compiles sources concurrently and returns tree with every generated file added.
// When several sources fail, the error of the first one in path order is returned.
func apply(ctx context.Context, c ports.Compiler, tree domain.SourceTree, sources []string) (domain.SourceTree, error) {
	type result struct {
		files []domain.SourceFile
		err   error
	}
	results := make([]result, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range sources {
		content, _ := tree.Content(path)
		g.Go(func() error {
			files, err := c.Compile(gctx, path, content)
			results[i] = result{files: files, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var generated []domain.SourceFile
	for i, res := range results {
		if res.err != nil {
			return tree, domain.Fail(domain.KindCompilation, "failed to compile "+sources[i], res.err)
		}
		generated = append(generated, res.files...)
	}
	return tree.With(generated...), nil
}

func report(w io.Writer, deltas []domain.Delta) {
	if len(deltas) == 0 {
		_, _ = fmt.Fprintln(w, "  No files modified")
		return
	}
	var b strings.Builder
	for _, d := range deltas {
		fmt.Fprintf(&b, "  %s %s\n", d.Change, d.Path)
	}
	_, _ = io.WriteString(w, b.String())
}
