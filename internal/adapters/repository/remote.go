package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/janekdb/rug-cli/internal/adapters/fs"
	"github.com/janekdb/rug-cli/internal/core/domain"
	"github.com/janekdb/rug-cli/internal/core/ports"
	"go.trai.ch/zerr"
)

// download fetches rel from the first remote that has it and stores it locally.
// Archives are verified against their .sha256 sidecar when the remote publishes one.
func (r *Repository) download(ctx context.Context, rel string) ([]byte, domain.Remote, error) {
	listener := ports.TransferListenerFrom(ctx)

	var lastErr error
	for _, remote := range r.remotes {
		ev := domain.TransferEvent{
			Direction:  domain.Download,
			State:      domain.TransferInitiated,
			Resource:   rel,
			Repository: remote.Name,
		}
		listener.OnTransfer(ev)

		data, err := r.fetch(ctx, remote, rel)
		if err != nil {
			ev.State, ev.Err = domain.TransferFailed, err
			listener.OnTransfer(ev)
			if !errors.Is(err, domain.ErrArtifactNotFound) {
				lastErr = err
			}
			continue
		}
		ev.Size = int64(len(data))

		if strings.HasSuffix(rel, "."+domain.ExtensionZip) {
			if err := r.verify(ctx, remote, rel, data); err != nil {
				ev.State, ev.Err = domain.TransferCorrupted, err
				listener.OnTransfer(ev)
				return nil, remote, err
			}
		}

		if err := fs.WriteFileAtomic(r.localPath(rel), data); err != nil {
			ev.State, ev.Err = domain.TransferFailed, err
			listener.OnTransfer(ev)
			return nil, remote, zerr.With(err, "path", rel)
		}

		ev.State = domain.TransferSucceeded
		listener.OnTransfer(ev)
		return data, remote, nil
	}

	if lastErr != nil {
		return nil, domain.Remote{}, lastErr
	}
	return nil, domain.Remote{}, zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "not found in any repository"), "path", rel)
}

// verify compares data with the checksum published next to it.
func (r *Repository) verify(ctx context.Context, remote domain.Remote, rel string, data []byte) error {
	sum, err := r.fetch(ctx, remote, rel+".sha256")
	if errors.Is(err, domain.ErrArtifactNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	fields := strings.Fields(string(sum))
	got := sha256.Sum256(data)
	if len(fields) == 0 || hex.EncodeToString(got[:]) != strings.ToLower(fields[0]) {
		err := zerr.With(zerr.Wrap(domain.ErrTransportFailure, "checksum mismatch"), "path", rel)
		return zerr.With(err, "repository", remote.Name)
	}
	return nil
}

// fetch performs one GET against a remote. 404 maps to domain.ErrArtifactNotFound.
func (r *Repository) fetch(ctx context.Context, remote domain.Remote, rel string) ([]byte, error) {
	url := strings.TrimSuffix(remote.URL, "/") + "/" + rel

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTransportFailure, err.Error()), "url", url)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTransportFailure, err.Error()), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "not found in repository"), "url", url)
	}
	if resp.StatusCode != http.StatusOK {
		err := zerr.With(zerr.Wrap(domain.ErrTransportFailure, "unexpected response status"), "status_code", resp.StatusCode)
		return nil, zerr.With(err, "url", url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrTransportFailure, err.Error()), "url", url)
	}
	return body, nil
}
