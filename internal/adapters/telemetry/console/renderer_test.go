package console_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/janekdb/rug-cli/internal/adapters/telemetry/console"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Record(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	r := console.New(&buf)

	ctx, v := r.Record(context.Background(), "Processing script sources")
	assert.Equal(t, v, ports.VertexFromContext(ctx))

	_, err := fmt.Fprintln(v.Stdout(), "  No files modified")
	require.NoError(t, err)
	v.Log(domain.LogLevelInfo, "  Created .atomist/target/editors/a.json")
	v.Log(domain.LogLevelDebug, "hidden")
	v.Complete(nil)

	assert.Equal(t, "Processing script sources\n  No files modified\n  Created .atomist/target/editors/a.json\n", buf.String())
	require.NoError(t, r.Close())
}

func TestRenderer_Verbose(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	r := console.New(&buf)
	r.SetVerbose(true)

	_, v := r.Record(context.Background(), "Processing dependencies")
	v.Log(domain.LogLevelDebug, "resolved acme:lib:1.0.0")
	v.Cached()
	v.Complete(nil)
	v.Complete(nil)

	assert.Equal(t, "Processing dependencies\nresolved acme:lib:1.0.0\n⚡ Processing dependencies\n", buf.String())
}

func TestRenderer_Failure(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	var buf bytes.Buffer
	r := console.New(&buf)

	_, v := r.Record(context.Background(), "Loading acme:lib:1.0.0 into runtime")
	v.Complete(errors.New("boom"))

	assert.Contains(t, buf.String(), "✗ Loading acme:lib:1.0.0 into runtime\n")
}
