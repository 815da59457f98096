package archive

import (
	"context"
	"encoding/json"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"go.trai.ch/zerr"
)

const loadFailed = "failed to load archive"

// Loader implements ports.UnitLoader over compiled operation descriptors.
type Loader struct {
	runtimeVersion string
}

// NewLoader creates a Loader for the given runtime version.
func NewLoader(runtimeVersion string) *Loader {
	return &Loader{runtimeVersion: runtimeVersion}
}

// Load builds the operations and handlers of artifact from the compiled tree.
// Every problem with the archive contents is reported as a load failure.
func (l *Loader) Load(ctx context.Context, env *domain.Environment, artifact domain.Coordinate, tree domain.SourceTree) (*domain.LoadedUnits, error) {
	if env != nil && env.Root.Identity() != artifact.Identity() {
		if _, ok := env.Lookup(artifact.Identity()); !ok {
			return nil, domain.Fail(domain.KindLoad, loadFailed,
				zerr.With(zerr.Wrap(domain.ErrUnitMissing, "artifact is not visible in the environment"), "artifact", artifact.String()))
		}
	}

	manifest, ok := tree.Content(domain.ManifestPath)
	if !ok {
		return nil, domain.Fail(domain.KindLoad, loadFailed,
			zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "archive has no manifest"), "artifact", artifact.String()))
	}
	desc, err := ParseDescriptor(manifest)
	if err != nil {
		return nil, domain.Fail(domain.KindLoad, loadFailed, err)
	}
	if err := desc.CheckRuntime(l.runtimeVersion); err != nil {
		return nil, domain.Fail(domain.KindLoad, loadFailed, err)
	}

	defaults, err := readDefaults(tree)
	if err != nil {
		return nil, domain.Fail(domain.KindLoad, loadFailed, err)
	}

	units := &domain.LoadedUnits{}
	for _, kind := range domain.OperationKinds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seen := make(map[string]string)
		for _, p := range tree.Under(path.Join(domain.TargetDir, kind.Plural())) {
			if !strings.HasSuffix(p, ".json") {
				continue
			}
			op, err := decodeOperation(tree, p, kind)
			if err != nil {
				return nil, domain.Fail(domain.KindLoad, loadFailed, err)
			}
			if prev, dup := seen[op.Name]; dup {
				err := zerr.With(zerr.New("duplicate operation name"), "operation", op.Name)
				return nil, domain.Fail(domain.KindLoad, loadFailed, zerr.With(zerr.With(err, "first", prev), "second", p))
			}
			seen[op.Name] = p
			applyDefaults(&op, defaults)

			if kind == domain.KindHandler {
				units.Handlers = append(units.Handlers, op)
			} else {
				units.Operations = append(units.Operations, op)
			}
		}
	}
	return units, nil
}

func decodeOperation(tree domain.SourceTree, p string, kind domain.OperationKind) (domain.Operation, error) {
	content, _ := tree.Content(p)
	var op domain.Operation
	if err := json.Unmarshal(content, &op); err != nil {
		return op, zerr.With(zerr.Wrap(domain.ErrMalformedArchive, err.Error()), "path", p)
	}
	if op.Name == "" || op.Kind != kind {
		return op, zerr.With(zerr.Wrap(domain.ErrMalformedArchive, "operation descriptor does not match its location"), "path", p)
	}
	return op, nil
}

// readDefaults merges the compiled defaults files in path order.
func readDefaults(tree domain.SourceTree) (map[string]string, error) {
	merged := make(map[string]string)
	for _, p := range tree.Under(path.Join(domain.TargetDir, "defaults")) {
		content, _ := tree.Content(p)
		var values map[string]string
		if err := json.Unmarshal(content, &values); err != nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrMalformedArchive, err.Error()), "path", p)
		}
		maps.Copy(merged, values)
	}
	return merged, nil
}

// applyDefaults fills parameters without a declared default.
// Keys match the parameter name as written or in upper case.
func applyDefaults(op *domain.Operation, defaults map[string]string) {
	op.Parameters = slices.Clone(op.Parameters)
	for i, p := range op.Parameters {
		if p.Default != "" {
			continue
		}
		if v, ok := defaults[p.Name]; ok {
			op.Parameters[i].Default = v
		} else if v, ok := defaults[strings.ToUpper(p.Name)]; ok {
			op.Parameters[i].Default = v
		}
	}
}
