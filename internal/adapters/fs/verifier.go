package fs

import (
	"context"
	"os"
	"runtime"

	"github.com/janekdb/rug-cli/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Verifier checks that unit locations exist.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyLocations stats every location in parallel and reports the first missing one.
func (v *Verifier) VerifyLocations(ctx context.Context, locations []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, loc := range locations {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if _, err := os.Stat(loc); err != nil {
				return zerr.With(zerr.Wrap(domain.ErrUnitMissing, err.Error()), "location", loc)
			}
			return nil
		})
	}
	return g.Wait()
}
