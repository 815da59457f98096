package resolver

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
)

// NewTransferPrinter returns a listener writing one line per finished transfer to w.
// Failed and corrupted transfers are only reported when verbose is set.
func NewTransferPrinter(w io.Writer, verbose bool) ports.TransferListener {
	return ports.TransferListenerFunc(func(ev domain.TransferEvent) {
		switch ev.State {
		case domain.TransferSucceeded:
		case domain.TransferFailed, domain.TransferCorrupted:
			if !verbose {
				return
			}
		default:
			return
		}
		_, _ = fmt.Fprintln(w, FormatTransfer(ev))
	})
}

// FormatTransfer renders ev as "  Downloading <resource> ← <repository> (<size>) <STATE>".
func FormatTransfer(ev domain.TransferEvent) string {
	arrow := "←"
	if ev.Direction == domain.Upload {
		arrow = "→"
	}
	line := fmt.Sprintf("  %s %s %s %s", ev.Direction, ev.Resource, arrow, ev.Repository)
	if ev.Size > 0 {
		line += " (" + humanize.Bytes(uint64(ev.Size)) + ")"
	}
	return line + " " + string(ev.State)
}
